package services

import (
	"context"
	"net/http"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
	"inventario-pzbp/internal/repositories"
	apperrors "inventario-pzbp/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type EquipoServiceInterface interface {
	GetEquipos(ctx context.Context, filter dto.EquipoFilter) (*dto.EquipoListDTO, error)
	FindEquipo(ctx context.Context, id uint64) (*dto.EquipoConHistorialDTO, error)
	CreateEquipo(ctx context.Context, payload dto.CreateEquipoDTO, usuarioID uint64) (*entities.Equipo, error)
	UpdateEquipo(ctx context.Context, id uint64, payload dto.UpdateEquipoDTO, usuarioID uint64) (*entities.Equipo, error)
	TrasladarEquipo(ctx context.Context, id uint64, payload dto.TrasladarEquipoDTO, usuarioID uint64) (*entities.Equipo, error)
	DeleteEquipo(ctx context.Context, id uint64, observaciones string, usuarioID uint64) error
}

type EquipoService struct {
	equipoRepo    repositories.EquipoRepositoryInterface
	destinoRepo   repositories.DestinoRepositoryInterface
	historialRepo repositories.HistorialRepositoryInterface
	usuarioRepo   repositories.UsuarioRepositoryInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewEquipoService(
	equipoRepo repositories.EquipoRepositoryInterface,
	destinoRepo repositories.DestinoRepositoryInterface,
	historialRepo repositories.HistorialRepositoryInterface,
	usuarioRepo repositories.UsuarioRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) EquipoServiceInterface {
	return &EquipoService{
		equipoRepo:    equipoRepo,
		destinoRepo:   destinoRepo,
		historialRepo: historialRepo,
		usuarioRepo:   usuarioRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

func (s *EquipoService) GetEquipos(ctx context.Context, filter dto.EquipoFilter) (*dto.EquipoListDTO, error) {
	equipos, total, err := s.equipoRepo.GetEquipos(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.EquipoListDTO{
		Equipos: equipos,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

func (s *EquipoService) FindEquipo(ctx context.Context, id uint64) (*dto.EquipoConHistorialDTO, error) {
	equipo, err := s.equipoRepo.FindEquipo(ctx, id)
	if err != nil {
		return nil, err
	}

	historial, err := s.historialRepo.GetHistorialPorEquipo(ctx, id, 20)
	if err != nil {
		return nil, err
	}

	return &dto.EquipoConHistorialDTO{Equipo: *equipo, Historial: historial}, nil
}

// CreateEquipo da de alta el equipo y registra el movimiento de Alta
// en la misma transacción: o entran los dos o no entra ninguno.
func (s *EquipoService) CreateEquipo(ctx context.Context, payload dto.CreateEquipoDTO, usuarioID uint64) (*entities.Equipo, error) {
	if payload.NInventario == "" || payload.NSSerial == "" {
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			"N° de inventario y N/S son requeridos", nil, nil)
	}

	tipo := payload.TipoEquipo
	if !entities.TipoEquipoValido(tipo) {
		tipo = entities.TipoEquipoRadio
	}

	if err := s.verificarDuplicados(ctx, payload.NSSerial, payload.NInventario); err != nil {
		return nil, err
	}

	usuario, err := s.usuarioRepo.FindUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	destinoNombre, err := s.nombreDestino(ctx, payload.DestinoID)
	if err != nil {
		return nil, err
	}

	var equipo *entities.Equipo
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipo, err = s.equipoRepo.CreateEquipo(ctx, tx, payload, tipo, entities.EstadoActivo)
		if err != nil {
			return err
		}

		return s.historialRepo.CreateMovimiento(ctx, tx, entities.HistorialMovimiento{
			EquipoID:            equipo.ID,
			NInventario:         equipo.NInventario,
			NSSerial:            equipo.NSSerial,
			DestinoOrigenNombre: entities.SinAsignar,
			DestinoNuevoID:      equipo.DestinoID,
			DestinoNuevoNombre:  destinoNombre,
			UsuarioID:           usuario.ID,
			UsuarioNombre:       usuario.NombreParaHistorial(),
			TipoMovimiento:      entities.MovimientoAlta,
			Observaciones:       null.NewString(payload.Observaciones, payload.Observaciones != ""),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("equipo dado de alta",
		zap.Uint64("equipoID", equipo.ID),
		zap.String("n_inventario", equipo.NInventario))
	return equipo, nil
}

// UpdateEquipo aplica el cambio y deduce los movimientos: un cambio de
// destino genera un Traslado y un cambio de estado un Cambio Estado,
// todo dentro de la misma transacción.
func (s *EquipoService) UpdateEquipo(ctx context.Context, id uint64, payload dto.UpdateEquipoDTO, usuarioID uint64) (*entities.Equipo, error) {
	if payload.TipoEquipo != nil && !entities.TipoEquipoValido(*payload.TipoEquipo) {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Tipo de equipo no válido", nil, nil)
	}
	if payload.Estado != nil && !entities.EstadoValido(*payload.Estado) {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Estado no válido", nil, nil)
	}

	// Los identificadores son obligatorios: no se pueden vaciar.
	if payload.NInventario != nil && *payload.NInventario == "" {
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			"N° de inventario y N/S son requeridos", nil, nil)
	}
	if payload.NSSerial != nil && *payload.NSSerial == "" {
		return nil, apperrors.NewHttpError(http.StatusBadRequest,
			"N° de inventario y N/S son requeridos", nil, nil)
	}

	anterior, err := s.equipoRepo.FindEquipo(ctx, id)
	if err != nil {
		return nil, err
	}

	// Los identificadores solo se verifican si realmente cambian.
	serialNuevo := ""
	if payload.NSSerial != nil && *payload.NSSerial != anterior.NSSerial {
		serialNuevo = *payload.NSSerial
	}
	inventarioNuevo := ""
	if payload.NInventario != nil && *payload.NInventario != anterior.NInventario {
		inventarioNuevo = *payload.NInventario
	}
	if err := s.verificarDuplicados(ctx, serialNuevo, inventarioNuevo); err != nil {
		return nil, err
	}

	usuario, err := s.usuarioRepo.FindUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	cambiaDestino := payload.DestinoID != nil &&
		(!anterior.DestinoID.Valid || anterior.DestinoID.Uint64 != *payload.DestinoID)
	cambiaEstado := payload.Estado != nil && *payload.Estado != anterior.Estado

	var destinoNuevoNombre string
	if cambiaDestino {
		destinoNuevoNombre, err = s.nombreDestino(ctx, payload.DestinoID)
		if err != nil {
			return nil, err
		}
	}

	obs := ""
	if payload.Observaciones != nil {
		obs = *payload.Observaciones
	}

	var equipo *entities.Equipo
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		equipo, err = s.equipoRepo.UpdateEquipo(ctx, tx, id, payload)
		if err != nil {
			return err
		}

		if cambiaDestino {
			if err := s.historialRepo.CreateMovimiento(ctx, tx, entities.HistorialMovimiento{
				EquipoID:            equipo.ID,
				NInventario:         equipo.NInventario,
				NSSerial:            equipo.NSSerial,
				DestinoOrigenID:     anterior.DestinoID,
				DestinoOrigenNombre: nombreDestinoDeDTO(anterior),
				DestinoNuevoID:      equipo.DestinoID,
				DestinoNuevoNombre:  destinoNuevoNombre,
				UsuarioID:           usuario.ID,
				UsuarioNombre:       usuario.NombreParaHistorial(),
				TipoMovimiento:      entities.MovimientoTraslado,
				Observaciones:       null.NewString(obs, obs != ""),
			}); err != nil {
				return err
			}
		}

		if cambiaEstado {
			obsEstado := "Estado: " + anterior.Estado + " → " + *payload.Estado
			if obs != "" {
				obsEstado = obs
			}
			if err := s.historialRepo.CreateMovimiento(ctx, tx, entities.HistorialMovimiento{
				EquipoID:            equipo.ID,
				NInventario:         equipo.NInventario,
				NSSerial:            equipo.NSSerial,
				DestinoOrigenID:     anterior.DestinoID,
				DestinoOrigenNombre: nombreDestinoDeDTO(anterior),
				DestinoNuevoID:      equipo.DestinoID,
				DestinoNuevoNombre:  nombreDestinoActual(anterior, destinoNuevoNombre, cambiaDestino),
				UsuarioID:           usuario.ID,
				UsuarioNombre:       usuario.NombreParaHistorial(),
				TipoMovimiento:      entities.MovimientoCambioEstado,
				Observaciones:       null.NewString(obsEstado, obsEstado != ""),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return equipo, nil
}

func (s *EquipoService) TrasladarEquipo(ctx context.Context, id uint64, payload dto.TrasladarEquipoDTO, usuarioID uint64) (*entities.Equipo, error) {
	return s.UpdateEquipo(ctx, id, dto.UpdateEquipoDTO{
		DestinoID:     payload.DestinoID,
		Observaciones: &payload.Observaciones,
	}, usuarioID)
}

// DeleteEquipo registra la Baja y borra el equipo en una transacción.
// El movimiento sobrevive al borrado: el historial no tiene clave
// foránea hacia equipos.
func (s *EquipoService) DeleteEquipo(ctx context.Context, id uint64, observaciones string, usuarioID uint64) error {
	equipo, err := s.equipoRepo.FindEquipo(ctx, id)
	if err != nil {
		return err
	}

	usuario, err := s.usuarioRepo.FindUsuario(ctx, usuarioID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.historialRepo.CreateMovimiento(ctx, tx, entities.HistorialMovimiento{
			EquipoID:            equipo.ID,
			NInventario:         equipo.NInventario,
			NSSerial:            equipo.NSSerial,
			DestinoOrigenID:     equipo.DestinoID,
			DestinoOrigenNombre: nombreDestinoDeDTO(equipo),
			DestinoNuevoNombre:  entities.SinAsignar,
			UsuarioID:           usuario.ID,
			UsuarioNombre:       usuario.NombreParaHistorial(),
			TipoMovimiento:      entities.MovimientoBaja,
			Observaciones:       null.NewString(observaciones, observaciones != ""),
		}); err != nil {
			return err
		}
		return s.equipoRepo.DeleteEquipo(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("equipo dado de baja",
		zap.Uint64("equipoID", id),
		zap.String("n_inventario", equipo.NInventario))
	return nil
}

func (s *EquipoService) verificarDuplicados(ctx context.Context, serial, inventario string) error {
	if serial != "" {
		existe, err := s.equipoRepo.ExisteNSSerial(ctx, serial)
		if err != nil {
			return err
		}
		if existe {
			return apperrors.NewHttpError(http.StatusConflict, "N/S duplicado: "+serial, nil, nil)
		}
	}
	if inventario != "" {
		existe, err := s.equipoRepo.ExisteNInventario(ctx, inventario)
		if err != nil {
			return err
		}
		if existe {
			return apperrors.NewHttpError(http.StatusConflict, "N° de inventario duplicado: "+inventario, nil, nil)
		}
	}
	return nil
}

func (s *EquipoService) nombreDestino(ctx context.Context, destinoID *uint64) (string, error) {
	if destinoID == nil {
		return entities.SinAsignar, nil
	}
	destino, err := s.destinoRepo.FindDestino(ctx, *destinoID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return "", apperrors.NewHttpError(http.StatusBadRequest, "El destino indicado no existe", nil, nil)
		}
		return "", err
	}
	return destino.Nombre, nil
}

func nombreDestinoDeDTO(equipo *dto.EquipoDTO) string {
	if equipo.Destino != nil {
		return equipo.Destino.Nombre
	}
	return entities.SinAsignar
}

func nombreDestinoActual(anterior *dto.EquipoDTO, nuevoNombre string, cambio bool) string {
	if cambio {
		return nuevoNombre
	}
	return nombreDestinoDeDTO(anterior)
}
