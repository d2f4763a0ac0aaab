package repositories

import (
	"context"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const historialFields = "id, equipo_id, n_inventario, ns_serial, destino_origen_id, destino_origen_nombre, destino_nuevo_id, destino_nuevo_nombre, usuario_id, usuario_nombre, tipo_movimiento, observaciones, fecha_movimiento"

type HistorialRepositoryInterface interface {
	CreateMovimiento(ctx context.Context, q Querier, mov entities.HistorialMovimiento) error
	GetHistorial(ctx context.Context, filter dto.HistorialFilter) ([]entities.HistorialMovimiento, uint64, error)
	GetHistorialPorEquipo(ctx context.Context, equipoID uint64, limit int) ([]entities.HistorialMovimiento, error)
	GetUltimosMovimientos(ctx context.Context, limit int) ([]entities.HistorialMovimiento, error)
	GetEstadisticas(ctx context.Context) (*dto.EstadisticasHistorialDTO, error)
}

type HistorialRepository struct {
	storage *pgxpool.Pool
}

func NewHistorialRepository(storage *pgxpool.Pool) HistorialRepositoryInterface {
	return &HistorialRepository{storage: storage}
}

// CreateMovimiento inserta un registro en el libro. El libro es solo
// de inserción: no existen métodos de update ni delete.
func (r *HistorialRepository) CreateMovimiento(ctx context.Context, q Querier, mov entities.HistorialMovimiento) error {
	if q == nil {
		q = r.storage
	}

	_, err := q.Exec(ctx, `
		INSERT INTO historial_movimientos
			(equipo_id, n_inventario, ns_serial, destino_origen_id, destino_origen_nombre,
			 destino_nuevo_id, destino_nuevo_nombre, usuario_id, usuario_nombre,
			 tipo_movimiento, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''))`,
		mov.EquipoID, mov.NInventario, mov.NSSerial,
		mov.DestinoOrigenID, mov.DestinoOrigenNombre,
		mov.DestinoNuevoID, mov.DestinoNuevoNombre,
		mov.UsuarioID, mov.UsuarioNombre,
		mov.TipoMovimiento, mov.Observaciones.String,
	)
	return err
}

func (r *HistorialRepository) GetHistorial(ctx context.Context, filter dto.HistorialFilter) ([]entities.HistorialMovimiento, uint64, error) {
	where := sq.And{}
	if filter.EquipoID != nil {
		where = append(where, sq.Eq{"equipo_id": *filter.EquipoID})
	}
	if filter.DestinoID != nil {
		where = append(where, sq.Or{
			sq.Eq{"destino_origen_id": *filter.DestinoID},
			sq.Eq{"destino_nuevo_id": *filter.DestinoID},
		})
	}
	if filter.Tipo != "" {
		where = append(where, sq.Eq{"tipo_movimiento": filter.Tipo})
	}
	if filter.FechaInicio != nil {
		where = append(where, sq.GtOrEq{"fecha_movimiento": *filter.FechaInicio})
	}
	if filter.FechaFin != nil {
		where = append(where, sq.LtOrEq{"fecha_movimiento": *filter.FechaFin})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").
		From("historial_movimientos").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	builder := psql.Select(historialFields).
		From("historial_movimientos").
		Where(where).
		OrderBy("fecha_movimiento DESC", "id DESC")

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	movimientos, err := r.queryMovimientos(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return movimientos, total, nil
}

func (r *HistorialRepository) GetHistorialPorEquipo(ctx context.Context, equipoID uint64, limit int) ([]entities.HistorialMovimiento, error) {
	query := "SELECT " + historialFields + " FROM historial_movimientos WHERE equipo_id = $1 ORDER BY fecha_movimiento DESC, id DESC"
	if limit > 0 {
		return r.queryMovimientos(ctx, query+" LIMIT $2", equipoID, limit)
	}
	return r.queryMovimientos(ctx, query, equipoID)
}

func (r *HistorialRepository) GetUltimosMovimientos(ctx context.Context, limit int) ([]entities.HistorialMovimiento, error) {
	return r.queryMovimientos(ctx,
		"SELECT "+historialFields+" FROM historial_movimientos ORDER BY fecha_movimiento DESC, id DESC LIMIT $1",
		limit)
}

func (r *HistorialRepository) queryMovimientos(ctx context.Context, query string, args ...interface{}) ([]entities.HistorialMovimiento, error) {
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movimientos := make([]entities.HistorialMovimiento, 0)
	for rows.Next() {
		var m entities.HistorialMovimiento
		err := rows.Scan(
			&m.ID, &m.EquipoID, &m.NInventario, &m.NSSerial,
			&m.DestinoOrigenID, &m.DestinoOrigenNombre,
			&m.DestinoNuevoID, &m.DestinoNuevoNombre,
			&m.UsuarioID, &m.UsuarioNombre,
			&m.TipoMovimiento, &m.Observaciones, &m.FechaMovimiento,
		)
		if err != nil {
			return nil, err
		}
		movimientos = append(movimientos, m)
	}
	return movimientos, rows.Err()
}

func (r *HistorialRepository) GetEstadisticas(ctx context.Context) (*dto.EstadisticasHistorialDTO, error) {
	porTipo, err := r.conteo(ctx,
		"SELECT tipo_movimiento, COUNT(*) FROM historial_movimientos GROUP BY tipo_movimiento ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}

	porUsuario, err := r.conteo(ctx,
		"SELECT usuario_nombre, COUNT(*) FROM historial_movimientos GROUP BY usuario_nombre ORDER BY COUNT(*) DESC LIMIT 10")
	if err != nil {
		return nil, err
	}

	return &dto.EstadisticasHistorialDTO{Estadisticas: porTipo, PorUsuario: porUsuario}, nil
}

func (r *HistorialRepository) conteo(ctx context.Context, query string) ([]dto.ConteoPorGrupoDTO, error) {
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conteos := make([]dto.ConteoPorGrupoDTO, 0)
	for rows.Next() {
		var c dto.ConteoPorGrupoDTO
		if err := rows.Scan(&c.Grupo, &c.Cantidad); err != nil {
			return nil, err
		}
		conteos = append(conteos, c)
	}
	return conteos, rows.Err()
}
