package repositories

import (
	"context"
	"errors"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
	apperrors "inventario-pzbp/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aarondl/null/v8"
)

const equipoFields = "e.id, e.n_orden, e.n_inventario, e.catalogo, e.ns_serial, e.gebipa, e.tipo_equipo, e.destino_id, e.observaciones, e.estado, e.fecha_alta, e.created_at, e.updated_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type EquipoRepositoryInterface interface {
	GetEquipos(ctx context.Context, filter dto.EquipoFilter) ([]dto.EquipoDTO, uint64, error)
	FindEquipo(ctx context.Context, id uint64) (*dto.EquipoDTO, error)
	CreateEquipo(ctx context.Context, q Querier, payload dto.CreateEquipoDTO, tipo, estado string) (*entities.Equipo, error)
	UpdateEquipo(ctx context.Context, q Querier, id uint64, payload dto.UpdateEquipoDTO) (*entities.Equipo, error)
	DeleteEquipo(ctx context.Context, q Querier, id uint64) error
	ExisteNSSerial(ctx context.Context, serial string) (bool, error)
	ExisteNInventario(ctx context.Context, inventario string) (bool, error)
}

type EquipoRepository struct {
	storage *pgxpool.Pool
}

func NewEquipoRepository(storage *pgxpool.Pool) EquipoRepositoryInterface {
	return &EquipoRepository{storage: storage}
}

// GetEquipos lista con filtros y paginación: primero el COUNT con los
// mismos filtros, después la página.
func (r *EquipoRepository) GetEquipos(ctx context.Context, filter dto.EquipoFilter) ([]dto.EquipoDTO, uint64, error) {
	where := buildEquipoWhere(filter)

	countQuery, countArgs, err := psql.Select("COUNT(*)").
		From("equipos e").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	builder := psql.Select(equipoFields + ", d.id, d.nombre, d.codigo, d.color").
		From("equipos e").
		LeftJoin("destinos d ON d.id = e.destino_id").
		Where(where).
		OrderBy("e.created_at DESC", "e.id DESC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	equipos := make([]dto.EquipoDTO, 0)
	for rows.Next() {
		equipo, err := scanEquipoConDestino(rows)
		if err != nil {
			return nil, 0, err
		}
		equipos = append(equipos, equipo)
	}
	return equipos, total, rows.Err()
}

func buildEquipoWhere(filter dto.EquipoFilter) sq.And {
	where := sq.And{}
	if filter.DestinoID != nil {
		where = append(where, sq.Eq{"e.destino_id": *filter.DestinoID})
	}
	if filter.Tipo != "" {
		where = append(where, sq.Eq{"e.tipo_equipo": filter.Tipo})
	}
	if filter.Estado != "" {
		where = append(where, sq.Eq{"e.estado": filter.Estado})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"e.n_inventario": pattern},
			sq.ILike{"e.ns_serial": pattern},
			sq.ILike{"e.n_orden": pattern},
			sq.ILike{"e.catalogo": pattern},
		})
	}
	return where
}

func (r *EquipoRepository) FindEquipo(ctx context.Context, id uint64) (*dto.EquipoDTO, error) {
	query := `
		SELECT ` + equipoFields + `, d.id, d.nombre, d.codigo, d.color
		FROM equipos e
		LEFT JOIN destinos d ON d.id = e.destino_id
		WHERE e.id = $1`

	equipo, err := scanEquipoConDestino(r.storage.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &equipo, nil
}

// scanEquipoConDestino acepta tanto pgx.Row como pgx.Rows. Las columnas
// del destino llegan como nullables por el LEFT JOIN.
func scanEquipoConDestino(row pgx.Row) (dto.EquipoDTO, error) {
	var equipo dto.EquipoDTO
	var destinoID null.Uint64
	var destinoNombre, destinoCodigo, destinoColor null.String

	err := row.Scan(
		&equipo.ID, &equipo.NOrden, &equipo.NInventario, &equipo.Catalogo,
		&equipo.NSSerial, &equipo.Gebipa, &equipo.TipoEquipo, &equipo.DestinoID,
		&equipo.Observaciones, &equipo.Estado, &equipo.FechaAlta,
		&equipo.CreatedAt, &equipo.UpdatedAt,
		&destinoID, &destinoNombre, &destinoCodigo, &destinoColor,
	)
	if err != nil {
		return equipo, err
	}

	if destinoID.Valid {
		equipo.Destino = &dto.DestinoConColorDTO{
			ID:     destinoID.Uint64,
			Nombre: destinoNombre.String,
			Codigo: destinoCodigo.String,
			Color:  destinoColor.String,
		}
	}
	return equipo, nil
}

// CreateEquipo recibe el ejecutor para poder correr dentro de la
// transacción que también inserta el movimiento de alta.
func (r *EquipoRepository) CreateEquipo(ctx context.Context, q Querier, payload dto.CreateEquipoDTO, tipo, estado string) (*entities.Equipo, error) {
	if q == nil {
		q = r.storage
	}

	var e entities.Equipo
	err := q.QueryRow(ctx, `
		INSERT INTO equipos (n_orden, n_inventario, catalogo, ns_serial, gebipa, tipo_equipo, destino_id, observaciones, estado)
		VALUES (NULLIF($1, ''), $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''), $9)
		RETURNING id, n_orden, n_inventario, catalogo, ns_serial, gebipa, tipo_equipo, destino_id, observaciones, estado, fecha_alta, created_at, updated_at`,
		payload.NOrden, payload.NInventario, payload.Catalogo, payload.NSSerial,
		payload.Gebipa, tipo, payload.DestinoID, payload.Observaciones, estado,
	).Scan(
		&e.ID, &e.NOrden, &e.NInventario, &e.Catalogo, &e.NSSerial, &e.Gebipa,
		&e.TipoEquipo, &e.DestinoID, &e.Observaciones, &e.Estado, &e.FechaAlta,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EquipoRepository) UpdateEquipo(ctx context.Context, q Querier, id uint64, payload dto.UpdateEquipoDTO) (*entities.Equipo, error) {
	if q == nil {
		q = r.storage
	}

	var e entities.Equipo
	err := q.QueryRow(ctx, `
		UPDATE equipos SET
			n_orden       = COALESCE($2, n_orden),
			n_inventario  = COALESCE($3, n_inventario),
			catalogo      = COALESCE($4, catalogo),
			ns_serial     = COALESCE($5, ns_serial),
			gebipa        = COALESCE($6, gebipa),
			tipo_equipo   = COALESCE($7, tipo_equipo),
			destino_id    = CASE WHEN $8::BOOLEAN THEN $9 ELSE destino_id END,
			observaciones = COALESCE($10, observaciones),
			estado        = COALESCE($11, estado),
			updated_at    = NOW()
		WHERE id = $1
		RETURNING id, n_orden, n_inventario, catalogo, ns_serial, gebipa, tipo_equipo, destino_id, observaciones, estado, fecha_alta, created_at, updated_at`,
		id, payload.NOrden, payload.NInventario, payload.Catalogo, payload.NSSerial,
		payload.Gebipa, payload.TipoEquipo, payload.DestinoID != nil, payload.DestinoID,
		payload.Observaciones, payload.Estado,
	).Scan(
		&e.ID, &e.NOrden, &e.NInventario, &e.Catalogo, &e.NSSerial, &e.Gebipa,
		&e.TipoEquipo, &e.DestinoID, &e.Observaciones, &e.Estado, &e.FechaAlta,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipoRepository) DeleteEquipo(ctx context.Context, q Querier, id uint64) error {
	if q == nil {
		q = r.storage
	}
	tag, err := q.Exec(ctx, "DELETE FROM equipos WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EquipoRepository) ExisteNSSerial(ctx context.Context, serial string) (bool, error) {
	var existe bool
	err := r.storage.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM equipos WHERE ns_serial = $1)", serial,
	).Scan(&existe)
	return existe, err
}

func (r *EquipoRepository) ExisteNInventario(ctx context.Context, inventario string) (bool, error) {
	var existe bool
	err := r.storage.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM equipos WHERE n_inventario = $1)", inventario,
	).Scan(&existe)
	return existe, err
}
