package services

import (
	"context"
	"testing"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
	"inventario-pzbp/internal/repositories"
	apperrors "inventario-pzbp/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// equipoStoreFake guarda un único equipo "actual" sobre el que operan
// las actualizaciones; suficiente para los flujos del servicio.
type equipoStoreFake struct {
	repositories.EquipoRepositoryInterface
	actual      dto.EquipoDTO
	seriales    map[string]bool
	inventarios map[string]bool
	borrado     bool
}

func (f *equipoStoreFake) FindEquipo(_ context.Context, _ uint64) (*dto.EquipoDTO, error) {
	copia := f.actual
	return &copia, nil
}

func (f *equipoStoreFake) CreateEquipo(_ context.Context, _ repositories.Querier, payload dto.CreateEquipoDTO, tipo, estado string) (*entities.Equipo, error) {
	e := entities.Equipo{
		ID:          1,
		NInventario: payload.NInventario,
		NSSerial:    payload.NSSerial,
		TipoEquipo:  tipo,
		Estado:      estado,
	}
	if payload.DestinoID != nil {
		e.DestinoID = null.Uint64From(*payload.DestinoID)
	}
	f.actual = dto.EquipoDTO{Equipo: e}
	return &e, nil
}

func (f *equipoStoreFake) UpdateEquipo(_ context.Context, _ repositories.Querier, _ uint64, payload dto.UpdateEquipoDTO) (*entities.Equipo, error) {
	e := f.actual.Equipo
	if payload.NInventario != nil {
		e.NInventario = *payload.NInventario
	}
	if payload.NSSerial != nil {
		e.NSSerial = *payload.NSSerial
	}
	if payload.DestinoID != nil {
		e.DestinoID = null.Uint64From(*payload.DestinoID)
	}
	if payload.Estado != nil {
		e.Estado = *payload.Estado
	}
	f.actual.Equipo = e
	return &e, nil
}

func (f *equipoStoreFake) DeleteEquipo(_ context.Context, _ repositories.Querier, _ uint64) error {
	f.borrado = true
	return nil
}

func (f *equipoStoreFake) ExisteNSSerial(_ context.Context, serial string) (bool, error) {
	return f.seriales[serial], nil
}

func (f *equipoStoreFake) ExisteNInventario(_ context.Context, inventario string) (bool, error) {
	return f.inventarios[inventario], nil
}

type destinoStoreFake struct {
	repositories.DestinoRepositoryInterface
	destinos map[uint64]entities.Destino
}

func (f *destinoStoreFake) FindDestino(_ context.Context, id uint64) (*entities.Destino, error) {
	d, ok := f.destinos[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func nuevoEquipoService(actual dto.EquipoDTO) (EquipoServiceInterface, *equipoStoreFake, *historialRepoFake) {
	equipos := &equipoStoreFake{
		actual:      actual,
		seriales:    map[string]bool{"SN-EXISTE": true},
		inventarios: map[string]bool{"INV-EXISTE": true},
	}
	historial := &historialRepoFake{}
	destinos := &destinoStoreFake{destinos: map[uint64]entities.Destino{
		1: {ID: 1, Nombre: "PZBP Central", Codigo: "PZBP"},
		2: {ID: 2, Nombre: "Móvil 1", Codigo: "MOV1"},
	}}

	svc := NewEquipoService(equipos, destinos, historial, &usuarioRepoFake{}, txManagerFake{}, zap.NewNop())
	return svc, equipos, historial
}

func ptr[T any](v T) *T { return &v }

func TestCreateEquipo_RegistraAlta(t *testing.T) {
	svc, _, historial := nuevoEquipoService(dto.EquipoDTO{})

	equipo, err := svc.CreateEquipo(context.Background(), dto.CreateEquipoDTO{
		NInventario: "INV-100",
		NSSerial:    "SN-100",
		DestinoID:   ptr(uint64(1)),
	}, 7)
	require.NoError(t, err)
	assert.Equal(t, entities.EstadoActivo, equipo.Estado)
	assert.Equal(t, entities.TipoEquipoRadio, equipo.TipoEquipo)

	require.Len(t, historial.movimientos, 1)
	mov := historial.movimientos[0]
	assert.Equal(t, entities.MovimientoAlta, mov.TipoMovimiento)
	assert.Equal(t, entities.SinAsignar, mov.DestinoOrigenNombre)
	assert.Equal(t, "PZBP Central", mov.DestinoNuevoNombre)
	assert.Equal(t, "Administrador PZBP", mov.UsuarioNombre)
}

func TestCreateEquipo_IdentificadoresRequeridos(t *testing.T) {
	svc, _, historial := nuevoEquipoService(dto.EquipoDTO{})

	// ninguno, solo serial y solo inventario: los tres casos fallan
	casos := []dto.CreateEquipoDTO{
		{},
		{NSSerial: "SN-100"},
		{NInventario: "INV-100"},
	}
	for _, payload := range casos {
		_, err := svc.CreateEquipo(context.Background(), payload, 7)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "N° de inventario y N/S son requeridos")
	}
	assert.Empty(t, historial.movimientos)
}

func TestCreateEquipo_SerialDuplicado(t *testing.T) {
	svc, _, _ := nuevoEquipoService(dto.EquipoDTO{})

	_, err := svc.CreateEquipo(context.Background(), dto.CreateEquipoDTO{
		NInventario: "INV-101",
		NSSerial:    "SN-EXISTE",
	}, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "N/S duplicado: SN-EXISTE")
}

func TestCreateEquipo_DestinoInexistente(t *testing.T) {
	svc, _, historial := nuevoEquipoService(dto.EquipoDTO{})

	_, err := svc.CreateEquipo(context.Background(), dto.CreateEquipoDTO{
		NInventario: "INV-101",
		NSSerial:    "SN-101",
		DestinoID:   ptr(uint64(99)),
	}, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El destino indicado no existe")
	assert.Empty(t, historial.movimientos)
}

func TestUpdateEquipo_NoPermiteVaciarIdentificadores(t *testing.T) {
	svc, _, historial := nuevoEquipoService(equipoActualEnDestino1())

	_, err := svc.UpdateEquipo(context.Background(), 1, dto.UpdateEquipoDTO{
		NSSerial: ptr(""),
	}, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "N° de inventario y N/S son requeridos")

	_, err = svc.UpdateEquipo(context.Background(), 1, dto.UpdateEquipoDTO{
		NInventario: ptr(""),
	}, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "N° de inventario y N/S son requeridos")
	assert.Empty(t, historial.movimientos)
}

func equipoActualEnDestino1() dto.EquipoDTO {
	return dto.EquipoDTO{
		Equipo: entities.Equipo{
			ID:          1,
			NInventario: "INV-100",
			NSSerial:    "SN-100",
			TipoEquipo:  entities.TipoEquipoRadio,
			DestinoID:   null.Uint64From(1),
			Estado:      entities.EstadoActivo,
		},
		Destino: &dto.DestinoConColorDTO{ID: 1, Nombre: "PZBP Central", Codigo: "PZBP"},
	}
}

func TestUpdateEquipo_CambioDestinoGeneraTraslado(t *testing.T) {
	svc, _, historial := nuevoEquipoService(equipoActualEnDestino1())

	_, err := svc.UpdateEquipo(context.Background(), 1, dto.UpdateEquipoDTO{
		DestinoID: ptr(uint64(2)),
	}, 7)
	require.NoError(t, err)

	require.Len(t, historial.movimientos, 1)
	mov := historial.movimientos[0]
	assert.Equal(t, entities.MovimientoTraslado, mov.TipoMovimiento)
	assert.Equal(t, "PZBP Central", mov.DestinoOrigenNombre)
	assert.Equal(t, "Móvil 1", mov.DestinoNuevoNombre)
}

func TestUpdateEquipo_CambioEstadoGeneraMovimiento(t *testing.T) {
	svc, _, historial := nuevoEquipoService(equipoActualEnDestino1())

	_, err := svc.UpdateEquipo(context.Background(), 1, dto.UpdateEquipoDTO{
		Estado: ptr(entities.EstadoMantenimiento),
	}, 7)
	require.NoError(t, err)

	require.Len(t, historial.movimientos, 1)
	mov := historial.movimientos[0]
	assert.Equal(t, entities.MovimientoCambioEstado, mov.TipoMovimiento)
	assert.Equal(t, "Estado: Activo → Mantenimiento", mov.Observaciones.String)
	assert.Equal(t, "PZBP Central", mov.DestinoNuevoNombre)
}

func TestUpdateEquipo_DestinoYEstadoGeneranDosMovimientos(t *testing.T) {
	svc, _, historial := nuevoEquipoService(equipoActualEnDestino1())

	_, err := svc.UpdateEquipo(context.Background(), 1, dto.UpdateEquipoDTO{
		DestinoID: ptr(uint64(2)),
		Estado:    ptr(entities.EstadoInactivo),
	}, 7)
	require.NoError(t, err)

	require.Len(t, historial.movimientos, 2)
	assert.Equal(t, entities.MovimientoTraslado, historial.movimientos[0].TipoMovimiento)
	assert.Equal(t, entities.MovimientoCambioEstado, historial.movimientos[1].TipoMovimiento)
	// el cambio de estado ya refleja el destino nuevo
	assert.Equal(t, "Móvil 1", historial.movimientos[1].DestinoNuevoNombre)
}

func TestUpdateEquipo_SinCambiosNoRegistraNada(t *testing.T) {
	svc, _, historial := nuevoEquipoService(equipoActualEnDestino1())

	_, err := svc.UpdateEquipo(context.Background(), 1, dto.UpdateEquipoDTO{
		Catalogo: ptr("Catálogo nuevo"),
	}, 7)
	require.NoError(t, err)
	assert.Empty(t, historial.movimientos)
}

func TestUpdateEquipo_EstadoInvalido(t *testing.T) {
	svc, _, _ := nuevoEquipoService(equipoActualEnDestino1())

	_, err := svc.UpdateEquipo(context.Background(), 1, dto.UpdateEquipoDTO{
		Estado: ptr("Roto"),
	}, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Estado no válido")
}

func TestTrasladarEquipo_DelegaEnUpdate(t *testing.T) {
	svc, _, historial := nuevoEquipoService(equipoActualEnDestino1())

	_, err := svc.TrasladarEquipo(context.Background(), 1, dto.TrasladarEquipoDTO{
		DestinoID:     ptr(uint64(2)),
		Observaciones: "traslado por obras",
	}, 7)
	require.NoError(t, err)

	require.Len(t, historial.movimientos, 1)
	assert.Equal(t, entities.MovimientoTraslado, historial.movimientos[0].TipoMovimiento)
	assert.Equal(t, "traslado por obras", historial.movimientos[0].Observaciones.String)
}

func TestDeleteEquipo_RegistraBajaAntesDeBorrar(t *testing.T) {
	svc, equipos, historial := nuevoEquipoService(equipoActualEnDestino1())

	err := svc.DeleteEquipo(context.Background(), 1, "fuera de servicio", 7)
	require.NoError(t, err)
	assert.True(t, equipos.borrado)

	require.Len(t, historial.movimientos, 1)
	mov := historial.movimientos[0]
	assert.Equal(t, entities.MovimientoBaja, mov.TipoMovimiento)
	assert.Equal(t, "PZBP Central", mov.DestinoOrigenNombre)
	assert.Equal(t, entities.SinAsignar, mov.DestinoNuevoNombre)
	assert.Equal(t, "fuera de servicio", mov.Observaciones.String)
}
