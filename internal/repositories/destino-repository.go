package repositories

import (
	"context"
	"errors"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
	apperrors "inventario-pzbp/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const destinoFields = "id, nombre, codigo, descripcion, color, activo, created_at, updated_at"

type DestinoRepositoryInterface interface {
	GetDestinos(ctx context.Context, soloActivos bool) ([]entities.Destino, error)
	FindDestino(ctx context.Context, id uint64) (*entities.Destino, error)
	CreateDestino(ctx context.Context, payload dto.CreateDestinoDTO) (*entities.Destino, error)
	UpdateDestino(ctx context.Context, id uint64, payload dto.UpdateDestinoDTO) (*entities.Destino, error)
	DeleteDestino(ctx context.Context, id uint64) error
	DeactivateDestino(ctx context.Context, id uint64) error
	CountEquipos(ctx context.Context, id uint64) (int64, error)
}

type DestinoRepository struct {
	storage *pgxpool.Pool
}

func NewDestinoRepository(storage *pgxpool.Pool) DestinoRepositoryInterface {
	return &DestinoRepository{storage: storage}
}

func (r *DestinoRepository) GetDestinos(ctx context.Context, soloActivos bool) ([]entities.Destino, error) {
	query := "SELECT " + destinoFields + " FROM destinos"
	if soloActivos {
		query += " WHERE activo = TRUE"
	}
	query += " ORDER BY nombre ASC"

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	destinos := make([]entities.Destino, 0)
	for rows.Next() {
		var d entities.Destino
		if err := rows.Scan(&d.ID, &d.Nombre, &d.Codigo, &d.Descripcion, &d.Color, &d.Activo, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		destinos = append(destinos, d)
	}
	return destinos, rows.Err()
}

func (r *DestinoRepository) FindDestino(ctx context.Context, id uint64) (*entities.Destino, error) {
	var d entities.Destino
	err := r.storage.QueryRow(ctx,
		"SELECT "+destinoFields+" FROM destinos WHERE id = $1", id,
	).Scan(&d.ID, &d.Nombre, &d.Codigo, &d.Descripcion, &d.Color, &d.Activo, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DestinoRepository) CreateDestino(ctx context.Context, payload dto.CreateDestinoDTO) (*entities.Destino, error) {
	color := payload.Color
	if color == "" {
		color = "#3B82F6"
	}

	var d entities.Destino
	err := r.storage.QueryRow(ctx, `
		INSERT INTO destinos (nombre, codigo, descripcion, color)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING `+destinoFields,
		payload.Nombre, payload.Codigo, payload.Descripcion, color,
	).Scan(&d.ID, &d.Nombre, &d.Codigo, &d.Descripcion, &d.Color, &d.Activo, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DestinoRepository) UpdateDestino(ctx context.Context, id uint64, payload dto.UpdateDestinoDTO) (*entities.Destino, error) {
	var d entities.Destino
	err := r.storage.QueryRow(ctx, `
		UPDATE destinos SET
			nombre      = COALESCE($2, nombre),
			codigo      = COALESCE($3, codigo),
			descripcion = COALESCE($4, descripcion),
			color       = COALESCE($5, color),
			updated_at  = NOW()
		WHERE id = $1
		RETURNING `+destinoFields,
		id, payload.Nombre, payload.Codigo, payload.Descripcion, payload.Color,
	).Scan(&d.ID, &d.Nombre, &d.Codigo, &d.Descripcion, &d.Color, &d.Activo, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DestinoRepository) DeleteDestino(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, "DELETE FROM destinos WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateDestino marca el destino como inactivo en lugar de
// borrarlo, para los destinos que aún tienen equipos asignados.
func (r *DestinoRepository) DeactivateDestino(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE destinos SET activo = FALSE, updated_at = NOW() WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DestinoRepository) CountEquipos(ctx context.Context, id uint64) (int64, error) {
	var total int64
	err := r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM equipos WHERE destino_id = $1", id,
	).Scan(&total)
	return total, err
}
