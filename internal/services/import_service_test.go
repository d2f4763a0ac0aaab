package services

import (
	"context"
	"testing"
	"time"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
	"inventario-pzbp/internal/repositories"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Los fakes embeben la interfaz: solo se implementa lo que el flujo de
// importación toca.

type equipoRepoFake struct {
	repositories.EquipoRepositoryInterface
	seriales    map[string]bool
	inventarios map[string]bool
	creados     []entities.Equipo
	nextID      uint64
}

func (f *equipoRepoFake) ExisteNSSerial(_ context.Context, serial string) (bool, error) {
	return f.seriales[serial], nil
}

func (f *equipoRepoFake) ExisteNInventario(_ context.Context, inventario string) (bool, error) {
	return f.inventarios[inventario], nil
}

func (f *equipoRepoFake) CreateEquipo(_ context.Context, _ repositories.Querier, payload dto.CreateEquipoDTO, tipo, estado string) (*entities.Equipo, error) {
	f.nextID++
	e := entities.Equipo{
		ID:          f.nextID,
		NInventario: payload.NInventario,
		NSSerial:    payload.NSSerial,
		TipoEquipo:  tipo,
		Estado:      estado,
		FechaAlta:   time.Now(),
	}
	if payload.DestinoID != nil {
		e.DestinoID = null.Uint64From(*payload.DestinoID)
	}
	f.creados = append(f.creados, e)
	if payload.NSSerial != "" {
		f.seriales[payload.NSSerial] = true
	}
	if payload.NInventario != "" {
		f.inventarios[payload.NInventario] = true
	}
	return &e, nil
}

type destinoRepoFake struct {
	repositories.DestinoRepositoryInterface
	destinos []entities.Destino
}

func (f *destinoRepoFake) GetDestinos(_ context.Context, _ bool) ([]entities.Destino, error) {
	return f.destinos, nil
}

func (f *destinoRepoFake) FindDestino(_ context.Context, id uint64) (*entities.Destino, error) {
	for i := range f.destinos {
		if f.destinos[i].ID == id {
			return &f.destinos[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

type historialRepoFake struct {
	repositories.HistorialRepositoryInterface
	movimientos []entities.HistorialMovimiento
}

func (f *historialRepoFake) CreateMovimiento(_ context.Context, _ repositories.Querier, mov entities.HistorialMovimiento) error {
	f.movimientos = append(f.movimientos, mov)
	return nil
}

type usuarioRepoFake struct {
	repositories.UsuarioRepositoryInterface
}

func (f *usuarioRepoFake) FindUsuario(_ context.Context, id uint64) (*entities.Usuario, error) {
	return &entities.Usuario{
		ID:             id,
		Username:       "admin",
		NombreCompleto: null.StringFrom("Administrador PZBP"),
		Rol:            entities.RolAdmin,
		Activo:         true,
	}, nil
}

type txManagerFake struct{}

func (txManagerFake) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

func nuevoImportService() (*ImportService, *equipoRepoFake, *historialRepoFake) {
	equipos := &equipoRepoFake{
		seriales:    map[string]bool{"SN-EXISTE": true},
		inventarios: map[string]bool{"INV-EXISTE": true},
	}
	historial := &historialRepoFake{}
	destinos := &destinoRepoFake{destinos: []entities.Destino{
		{ID: 1, Nombre: "PZBP Central", Codigo: "PZBP", Color: "#1976d2"},
		{ID: 2, Nombre: "Móvil 1", Codigo: "MOV1", Color: "#388e3c"},
	}}

	svc := NewImportService(equipos, destinos, historial, &usuarioRepoFake{}, txManagerFake{}, zap.NewNop())
	return svc.(*ImportService), equipos, historial
}

func TestImportar_FilasValidasYErroresConviven(t *testing.T) {
	svc, equipos, _ := nuevoImportService()

	payload := dto.ImportarRequestDTO{
		Data: []map[string]interface{}{
			{"n_inventario": "INV-001", "ns_serial": "SN-001", "destino": "pzbp", "tipo_equipo": "RADIO"},
			{"n_inventario": "INV-EXISTE", "ns_serial": "SN-002"},
			{"n_inventario": "", "ns_serial": ""},
			{"n_inventario": "INV-003", "ns_serial": "SN-001"},
			{"n_inventario": "INV-004", "ns_serial": "SN-004", "destino": "desconocido"},
		},
	}

	res, err := svc.Importar(context.Background(), payload, 7)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Importados)
	assert.Equal(t, 5, res.Total)
	require.Len(t, res.Errores, 3)
	assert.Equal(t, "Importación completada: 2 exitosos, 3 errores", res.Message)

	assert.Equal(t, 2, res.Errores[0].Fila)
	assert.Contains(t, res.Errores[0].Error, "N° de inventario duplicado")
	assert.Equal(t, 3, res.Errores[1].Fila)
	assert.Contains(t, res.Errores[1].Error, "Faltan campos requeridos")
	assert.Equal(t, 4, res.Errores[2].Fila)
	assert.Contains(t, res.Errores[2].Error, "N/S duplicado")

	// destino resuelto sin distinguir mayúsculas; el no resuelto entra
	// sin asignar
	require.Len(t, equipos.creados, 2)
	assert.Equal(t, uint64(1), equipos.creados[0].DestinoID.Uint64)
	assert.Equal(t, entities.TipoEquipoRadio, equipos.creados[0].TipoEquipo)
	assert.False(t, equipos.creados[1].DestinoID.Valid)
}

func TestImportar_CadaAltaLlevaSuMovimiento(t *testing.T) {
	svc, _, historial := nuevoImportService()

	payload := dto.ImportarRequestDTO{
		Data: []map[string]interface{}{
			{"n_inventario": "INV-010", "ns_serial": "SN-010", "destino": "MOV1"},
			{"n_inventario": "INV-011", "ns_serial": "SN-011"},
		},
	}

	res, err := svc.Importar(context.Background(), payload, 7)
	require.NoError(t, err)
	require.Equal(t, 2, res.Importados)

	require.Len(t, historial.movimientos, 2)
	for _, mov := range historial.movimientos {
		assert.Equal(t, entities.MovimientoAlta, mov.TipoMovimiento)
		assert.Equal(t, "Administrador PZBP", mov.UsuarioNombre)
		assert.Equal(t, "Carga masiva", mov.Observaciones.String)
	}
	assert.Equal(t, "Móvil 1", historial.movimientos[0].DestinoNuevoNombre)
	assert.Equal(t, entities.SinAsignar, historial.movimientos[1].DestinoNuevoNombre)
}

func TestImportar_MappingDeColumnas(t *testing.T) {
	svc, equipos, _ := nuevoImportService()

	payload := dto.ImportarRequestDTO{
		Data: []map[string]interface{}{
			{"Inventario": "INV-020", "Serie": "SN-020"},
		},
		Mapping: map[string]string{
			"n_inventario": "Inventario",
			"ns_serial":    "Serie",
		},
	}

	res, err := svc.Importar(context.Background(), payload, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Importados)
	require.Len(t, equipos.creados, 1)
	assert.Equal(t, "INV-020", equipos.creados[0].NInventario)
}

func TestImportar_FilaSinUnIdentificadorFalla(t *testing.T) {
	svc, equipos, _ := nuevoImportService()

	payload := dto.ImportarRequestDTO{
		Data: []map[string]interface{}{
			{"n_inventario": "INV-040", "ns_serial": ""},
			{"n_inventario": "", "ns_serial": "SN-041"},
		},
	}

	res, err := svc.Importar(context.Background(), payload, 7)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Importados)
	require.Len(t, res.Errores, 2)
	assert.Contains(t, res.Errores[0].Error, "Faltan campos requeridos")
	assert.Contains(t, res.Errores[1].Error, "Faltan campos requeridos")
	assert.Empty(t, equipos.creados)
}

func TestImportar_NumerosDeExcelSinDecimales(t *testing.T) {
	svc, equipos, _ := nuevoImportService()

	payload := dto.ImportarRequestDTO{
		Data: []map[string]interface{}{
			{"n_inventario": float64(12345), "ns_serial": "SN-030"},
		},
	}

	res, err := svc.Importar(context.Background(), payload, 7)
	require.NoError(t, err)
	require.Equal(t, 1, res.Importados)
	assert.Equal(t, "12345", equipos.creados[0].NInventario)
}

func TestVistaPrevia(t *testing.T) {
	svc, _, _ := nuevoImportService()

	data := []byte("N° de Inventario;N/S;Destino\nINV-100;SN-100;pzbp\nINV-101;SN-101;Almacén\n")

	preview, err := svc.VistaPrevia(context.Background(), data, "equipos.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, preview.TotalRows)
	assert.Equal(t, "N° de Inventario", preview.AutoMapping["n_inventario"])
	require.Len(t, preview.Data, 2)

	require.NotNil(t, preview.Data[0].DestinoID)
	assert.Equal(t, uint64(1), *preview.Data[0].DestinoID)
	assert.Equal(t, "PZBP Central", preview.Data[0].DestinoNombre)
	assert.Equal(t, "#1976d2", preview.Data[0].DestinoColor)

	assert.Nil(t, preview.Data[1].DestinoID)
	assert.Equal(t, "No encontrado", preview.Data[1].DestinoNombre)

	require.Len(t, preview.Destinos, 2)
}

func TestImportarCSV_TodoEnUno(t *testing.T) {
	svc, equipos, historial := nuevoImportService()

	data := []byte("N° de Inventario;N/S;Destino\nINV-200;SN-200;PZBP\nINV-200;SN-201;\n")

	res, err := svc.ImportarCSV(context.Background(), data, "equipos.csv", 7)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Importados)
	require.Len(t, res.Errores, 1)
	assert.Contains(t, res.Errores[0].Error, "N° de inventario duplicado en el archivo")

	require.Len(t, equipos.creados, 1)
	require.Len(t, historial.movimientos, 1)
	assert.Equal(t, "Carga masiva desde CSV", historial.movimientos[0].Observaciones.String)
}
