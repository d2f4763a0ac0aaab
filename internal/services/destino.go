package services

import (
	"context"
	"net/http"
	"strings"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
	"inventario-pzbp/internal/repositories"
	apperrors "inventario-pzbp/pkg/errors"

	"go.uber.org/zap"
)

type DestinoServiceInterface interface {
	GetDestinos(ctx context.Context, soloActivos bool) ([]entities.Destino, error)
	FindDestino(ctx context.Context, id uint64) (*entities.Destino, error)
	CreateDestino(ctx context.Context, payload dto.CreateDestinoDTO) (*entities.Destino, error)
	UpdateDestino(ctx context.Context, id uint64, payload dto.UpdateDestinoDTO) (*entities.Destino, error)
	DeleteDestino(ctx context.Context, id uint64) (*dto.DeleteDestinoResultDTO, error)
}

type DestinoService struct {
	destinoRepo repositories.DestinoRepositoryInterface
	logger      *zap.Logger
}

func NewDestinoService(
	destinoRepo repositories.DestinoRepositoryInterface,
	logger *zap.Logger,
) DestinoServiceInterface {
	return &DestinoService{
		destinoRepo: destinoRepo,
		logger:      logger,
	}
}

func (s *DestinoService) GetDestinos(ctx context.Context, soloActivos bool) ([]entities.Destino, error) {
	return s.destinoRepo.GetDestinos(ctx, soloActivos)
}

func (s *DestinoService) FindDestino(ctx context.Context, id uint64) (*entities.Destino, error) {
	return s.destinoRepo.FindDestino(ctx, id)
}

func (s *DestinoService) CreateDestino(ctx context.Context, payload dto.CreateDestinoDTO) (*entities.Destino, error) {
	payload.Codigo = strings.ToUpper(strings.TrimSpace(payload.Codigo))

	destino, err := s.destinoRepo.CreateDestino(ctx, payload)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusConflict,
			"Ya existe un destino con ese nombre o código", err, nil)
	}
	s.logger.Info("destino creado", zap.Uint64("destinoID", destino.ID), zap.String("codigo", destino.Codigo))
	return destino, nil
}

func (s *DestinoService) UpdateDestino(ctx context.Context, id uint64, payload dto.UpdateDestinoDTO) (*entities.Destino, error) {
	if payload.Codigo != nil {
		codigo := strings.ToUpper(strings.TrimSpace(*payload.Codigo))
		payload.Codigo = &codigo
	}
	return s.destinoRepo.UpdateDestino(ctx, id, payload)
}

// DeleteDestino borra el destino solo si no tiene equipos; si los
// tiene, lo desactiva para que deje de salir en los listados sin
// romper las referencias.
func (s *DestinoService) DeleteDestino(ctx context.Context, id uint64) (*dto.DeleteDestinoResultDTO, error) {
	if _, err := s.destinoRepo.FindDestino(ctx, id); err != nil {
		return nil, err
	}

	total, err := s.destinoRepo.CountEquipos(ctx, id)
	if err != nil {
		return nil, err
	}

	if total > 0 {
		if err := s.destinoRepo.DeactivateDestino(ctx, id); err != nil {
			return nil, err
		}
		s.logger.Info("destino desactivado por tener equipos asignados",
			zap.Uint64("destinoID", id), zap.Int64("equipos", total))
		return &dto.DeleteDestinoResultDTO{
			Message:     "El destino tiene equipos asignados; se ha desactivado en lugar de eliminarse",
			Desactivado: true,
		}, nil
	}

	if err := s.destinoRepo.DeleteDestino(ctx, id); err != nil {
		return nil, err
	}
	s.logger.Info("destino eliminado", zap.Uint64("destinoID", id))
	return &dto.DeleteDestinoResultDTO{Message: "Destino eliminado correctamente"}, nil
}
