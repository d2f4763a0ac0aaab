package services

import (
	"context"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/repositories"

	"go.uber.org/zap"
)

type HistorialServiceInterface interface {
	GetHistorial(ctx context.Context, filter dto.HistorialFilter) (*dto.HistorialListDTO, error)
	GetEstadisticas(ctx context.Context) (*dto.EstadisticasHistorialDTO, error)
}

type HistorialService struct {
	historialRepo repositories.HistorialRepositoryInterface
	logger        *zap.Logger
}

func NewHistorialService(
	historialRepo repositories.HistorialRepositoryInterface,
	logger *zap.Logger,
) HistorialServiceInterface {
	return &HistorialService{historialRepo: historialRepo, logger: logger}
}

func (s *HistorialService) GetHistorial(ctx context.Context, filter dto.HistorialFilter) (*dto.HistorialListDTO, error) {
	movimientos, total, err := s.historialRepo.GetHistorial(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.HistorialListDTO{
		Historial: movimientos,
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}, nil
}

func (s *HistorialService) GetEstadisticas(ctx context.Context) (*dto.EstadisticasHistorialDTO, error) {
	return s.historialRepo.GetEstadisticas(ctx)
}
