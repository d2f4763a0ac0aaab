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

const usuarioFields = "id, username, password_hash, email, rol, nombre_completo, activo, created_at, updated_at"

type UsuarioRepositoryInterface interface {
	FindByUsername(ctx context.Context, username string) (*entities.Usuario, error)
	FindUsuario(ctx context.Context, id uint64) (*entities.Usuario, error)
	GetUsuarios(ctx context.Context) ([]entities.Usuario, error)
	CreateUsuario(ctx context.Context, payload dto.CreateUsuarioDTO, passwordHash string) (*entities.Usuario, error)
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	SetActivo(ctx context.Context, id uint64, activo bool) error
}

type UsuarioRepository struct {
	storage *pgxpool.Pool
}

func NewUsuarioRepository(storage *pgxpool.Pool) UsuarioRepositoryInterface {
	return &UsuarioRepository{storage: storage}
}

func (r *UsuarioRepository) FindByUsername(ctx context.Context, username string) (*entities.Usuario, error) {
	return r.findBy(ctx, "username = $1", username)
}

func (r *UsuarioRepository) FindUsuario(ctx context.Context, id uint64) (*entities.Usuario, error) {
	return r.findBy(ctx, "id = $1", id)
}

func (r *UsuarioRepository) findBy(ctx context.Context, cond string, arg interface{}) (*entities.Usuario, error) {
	var u entities.Usuario
	err := r.storage.QueryRow(ctx,
		"SELECT "+usuarioFields+" FROM usuarios WHERE "+cond, arg,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Rol, &u.NombreCompleto, &u.Activo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UsuarioRepository) GetUsuarios(ctx context.Context) ([]entities.Usuario, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT "+usuarioFields+" FROM usuarios ORDER BY username ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usuarios := make([]entities.Usuario, 0)
	for rows.Next() {
		var u entities.Usuario
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Rol, &u.NombreCompleto, &u.Activo, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

func (r *UsuarioRepository) CreateUsuario(ctx context.Context, payload dto.CreateUsuarioDTO, passwordHash string) (*entities.Usuario, error) {
	var u entities.Usuario
	err := r.storage.QueryRow(ctx, `
		INSERT INTO usuarios (username, password_hash, email, rol, nombre_completo)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING `+usuarioFields,
		payload.Username, passwordHash, payload.Email, payload.Rol, payload.NombreCompleto,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Rol, &u.NombreCompleto, &u.Activo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsuarioRepository) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE usuarios SET password_hash = $2, updated_at = NOW() WHERE id = $1", id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UsuarioRepository) SetActivo(ctx context.Context, id uint64, activo bool) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE usuarios SET activo = $2, updated_at = NOW() WHERE id = $1", id, activo)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
