package repositories

import (
	"context"
	"errors"
	"time"

	"inventario-pzbp/internal/entities"
	apperrors "inventario-pzbp/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SesionRepositoryInterface interface {
	CreateSesion(ctx context.Context, sesion entities.Sesion) (*entities.Sesion, error)
	FindByToken(ctx context.Context, token string) (*entities.Sesion, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUsuario(ctx context.Context, usuarioID uint64) ([]string, error)
	DeleteExpiradas(ctx context.Context) (int64, error)
}

type SesionRepository struct {
	storage *pgxpool.Pool
}

func NewSesionRepository(storage *pgxpool.Pool) SesionRepositoryInterface {
	return &SesionRepository{storage: storage}
}

func (r *SesionRepository) CreateSesion(ctx context.Context, sesion entities.Sesion) (*entities.Sesion, error) {
	sesion.ID = uuid.NewString()

	err := r.storage.QueryRow(ctx, `
		INSERT INTO sesiones (id, usuario_id, token, ip_address, user_agent, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		sesion.ID, sesion.UsuarioID, sesion.Token, sesion.IPAddress, sesion.UserAgent, sesion.ExpiresAt,
	).Scan(&sesion.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sesion, nil
}

func (r *SesionRepository) FindByToken(ctx context.Context, token string) (*entities.Sesion, error) {
	var s entities.Sesion
	err := r.storage.QueryRow(ctx, `
		SELECT id, usuario_id, token, ip_address, user_agent, expires_at, created_at
		FROM sesiones WHERE token = $1`, token,
	).Scan(&s.ID, &s.UsuarioID, &s.Token, &s.IPAddress, &s.UserAgent, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionExpired
		}
		return nil, err
	}
	if time.Now().After(s.ExpiresAt) {
		return nil, apperrors.ErrSessionExpired
	}
	return &s, nil
}

func (r *SesionRepository) DeleteByToken(ctx context.Context, token string) error {
	_, err := r.storage.Exec(ctx, "DELETE FROM sesiones WHERE token = $1", token)
	return err
}

// DeleteByUsuario cierra todas las sesiones del usuario y devuelve los
// tokens borrados para que el servicio pueda invalidarlos también en
// el caché.
func (r *SesionRepository) DeleteByUsuario(ctx context.Context, usuarioID uint64) ([]string, error) {
	rows, err := r.storage.Query(ctx,
		"DELETE FROM sesiones WHERE usuario_id = $1 RETURNING token", usuarioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// DeleteExpiradas limpia las sesiones vencidas; se invoca de forma
// periódica desde el arranque.
func (r *SesionRepository) DeleteExpiradas(ctx context.Context) (int64, error) {
	tag, err := r.storage.Exec(ctx, "DELETE FROM sesiones WHERE expires_at < NOW()")
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
