package services

import (
	"context"
	"sync"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
	"inventario-pzbp/internal/repositories"

	"go.uber.org/zap"
)

const ultimosMovimientosDashboard = 10

type DashboardServiceInterface interface {
	GetDashboard(ctx context.Context) (*dto.DashboardDTO, error)
	GetEvolucion(ctx context.Context, dias int) ([]dto.EvolucionPuntoDTO, error)
	GetPorTipo(ctx context.Context) ([]dto.TipoCantidadDTO, error)
}

type DashboardService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
	historialRepo repositories.HistorialRepositoryInterface
	logger        *zap.Logger
}

func NewDashboardService(
	dashboardRepo repositories.DashboardRepositoryInterface,
	historialRepo repositories.HistorialRepositoryInterface,
	logger *zap.Logger,
) DashboardServiceInterface {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		historialRepo: historialRepo,
		logger:        logger,
	}
}

// GetDashboard lanza las consultas del tablero en paralelo; cada una
// es independiente y el tablero se arma cuando terminan todas.
func (s *DashboardService) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex

		contadores   *dto.ContadoresDTO
		distribucion []dto.DistribucionDestinoDTO
		porEstado    []dto.EstadoCantidadDTO
		ultimos      []entities.HistorialMovimiento

		errs []error
	)

	addTask := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	addTask(func() (err error) { contadores, err = s.dashboardRepo.GetContadores(ctx); return })
	addTask(func() (err error) { distribucion, err = s.dashboardRepo.GetDistribucionPorDestino(ctx); return })
	addTask(func() (err error) { porEstado, err = s.dashboardRepo.GetConteoPorEstado(ctx); return })
	addTask(func() (err error) {
		ultimos, err = s.historialRepo.GetUltimosMovimientos(ctx, ultimosMovimientosDashboard)
		return
	})

	wg.Wait()

	if len(errs) > 0 {
		s.logger.Error("error al componer el tablero", zap.Error(errs[0]))
		return nil, errs[0]
	}

	return &dto.DashboardDTO{
		Contadores:             *contadores,
		DistribucionPorDestino: distribucion,
		PorEstado:              porEstado,
		UltimosMovimientos:     ultimos,
	}, nil
}

func (s *DashboardService) GetEvolucion(ctx context.Context, dias int) ([]dto.EvolucionPuntoDTO, error) {
	if dias <= 0 || dias > 365 {
		dias = 30
	}
	return s.dashboardRepo.GetEvolucionMovimientos(ctx, dias)
}

func (s *DashboardService) GetPorTipo(ctx context.Context) ([]dto.TipoCantidadDTO, error) {
	return s.dashboardRepo.GetConteoPorTipo(ctx)
}
