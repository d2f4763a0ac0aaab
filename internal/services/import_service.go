package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"
	"inventario-pzbp/internal/importer"
	"inventario-pzbp/internal/repositories"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Filas que se devuelven en la vista previa. El archivo completo se
// procesa igualmente en la importación.
const previewMaxFilas = 100

type ImportServiceInterface interface {
	VistaPrevia(ctx context.Context, data []byte, filename string) (*dto.VistaPreviaDTO, error)
	Importar(ctx context.Context, payload dto.ImportarRequestDTO, usuarioID uint64) (*dto.ResultadoImportacionDTO, error)
	ImportarCSV(ctx context.Context, data []byte, filename string, usuarioID uint64) (*dto.ResultadoImportacionDTO, error)
	GenerarPlantilla() []byte
}

type ImportService struct {
	equipoRepo    repositories.EquipoRepositoryInterface
	destinoRepo   repositories.DestinoRepositoryInterface
	historialRepo repositories.HistorialRepositoryInterface
	usuarioRepo   repositories.UsuarioRepositoryInterface
	txManager     repositories.TxManagerInterface
	logger        *zap.Logger
}

func NewImportService(
	equipoRepo repositories.EquipoRepositoryInterface,
	destinoRepo repositories.DestinoRepositoryInterface,
	historialRepo repositories.HistorialRepositoryInterface,
	usuarioRepo repositories.UsuarioRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) ImportServiceInterface {
	return &ImportService{
		equipoRepo:    equipoRepo,
		destinoRepo:   destinoRepo,
		historialRepo: historialRepo,
		usuarioRepo:   usuarioRepo,
		txManager:     txManager,
		logger:        logger,
	}
}

// VistaPrevia parsea el archivo, adivina el mapeo de columnas y
// resuelve los destinos, sin escribir nada todavía.
func (s *ImportService) VistaPrevia(ctx context.Context, data []byte, filename string) (*dto.VistaPreviaDTO, error) {
	columns, filas, err := importer.ParseFile(data, filename)
	if err != nil {
		return nil, err
	}

	autoMapping := importer.AutoMap(columns)
	tipadas := importer.ApplyMapping(filas, autoMapping)

	destinos, err := s.destinoRepo.GetDestinos(ctx, true)
	if err != nil {
		return nil, err
	}
	importer.NewResolver(destinos).Enrich(tipadas)

	preview := tipadas
	if len(preview) > previewMaxFilas {
		preview = preview[:previewMaxFilas]
	}

	cortos := make([]dto.DestinoCortoDTO, 0, len(destinos))
	for _, d := range destinos {
		cortos = append(cortos, dto.DestinoCortoDTO{ID: d.ID, Nombre: d.Nombre, Codigo: d.Codigo})
	}

	s.logger.Info("archivo de carga parseado",
		zap.String("archivo", filename),
		zap.Int("filas", len(tipadas)),
		zap.Int("columnas", len(columns)))

	return &dto.VistaPreviaDTO{
		Columns:     columns,
		Data:        preview,
		AutoMapping: autoMapping,
		Destinos:    cortos,
		TotalRows:   len(tipadas),
	}, nil
}

// Importar ejecuta la carga fila a fila. Cada fila va en su propia
// transacción equipo+movimiento: una fila mala no arrastra a las
// demás y ningún equipo queda jamás sin su Alta.
func (s *ImportService) Importar(ctx context.Context, payload dto.ImportarRequestDTO, usuarioID uint64) (*dto.ResultadoImportacionDTO, error) {
	return s.importar(ctx, payload, usuarioID, "Carga masiva")
}

// ImportarCSV encadena el parseo y la importación en una sola llamada,
// con el mapeo automático.
func (s *ImportService) ImportarCSV(ctx context.Context, data []byte, filename string, usuarioID uint64) (*dto.ResultadoImportacionDTO, error) {
	columns, filas, err := importer.ParseFile(data, filename)
	if err != nil {
		return nil, err
	}

	mapping := importer.AutoMap(columns)
	crudas := make([]map[string]interface{}, 0, len(filas))
	for _, fila := range filas {
		cruda := make(map[string]interface{}, len(fila))
		for col, valor := range fila {
			cruda[col] = valor
		}
		crudas = append(crudas, cruda)
	}

	return s.importar(ctx, dto.ImportarRequestDTO{Data: crudas, Mapping: mapping}, usuarioID, "Carga masiva desde CSV")
}

func (s *ImportService) importar(ctx context.Context, payload dto.ImportarRequestDTO, usuarioID uint64, obsAlta string) (*dto.ResultadoImportacionDTO, error) {
	usuario, err := s.usuarioRepo.FindUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}

	destinos, err := s.destinoRepo.GetDestinos(ctx, true)
	if err != nil {
		return nil, err
	}
	resolver := importer.NewResolver(destinos)
	validador := importer.NewValidadorLote(s.equipoRepo)

	exitosos := make([]dto.EquipoImportadoDTO, 0, len(payload.Data))
	errores := make([]dto.ErrorFilaDTO, 0)

	for idx, cruda := range payload.Data {
		numFila := idx + 1
		fila := filaDeCruda(cruda, payload.Mapping)
		if fila.RowIndex > 0 {
			numFila = fila.RowIndex
		}

		if err := validador.Validar(ctx, fila); err != nil {
			errores = append(errores, dto.ErrorFilaDTO{Fila: numFila, Error: err.Error()})
			continue
		}

		var destinoID *uint64
		destinoNombre := entities.SinAsignar
		if fila.Destino != "" {
			if d, ok := resolver.Resolve(fila.Destino); ok {
				id := d.ID
				destinoID = &id
				destinoNombre = d.Nombre
			}
		} else if fila.DestinoID != nil {
			// La vista previa ya resolvió el destino.
			if d, err := s.destinoRepo.FindDestino(ctx, *fila.DestinoID); err == nil {
				destinoID = fila.DestinoID
				destinoNombre = d.Nombre
			}
		}

		equipoNuevo := dto.CreateEquipoDTO{
			NOrden:        fila.NOrden,
			NInventario:   fila.NInventario,
			Catalogo:      fila.Catalogo,
			NSSerial:      fila.NSSerial,
			Gebipa:        fila.Gebipa,
			DestinoID:     destinoID,
			Observaciones: fila.Observaciones,
		}
		tipo := importer.NormalizarTipo(fila.TipoEquipo)
		estado := importer.NormalizarEstado(fila.Estado)

		var equipo *entities.Equipo
		err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			var txErr error
			equipo, txErr = s.equipoRepo.CreateEquipo(ctx, tx, equipoNuevo, tipo, estado)
			if txErr != nil {
				return txErr
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
				Observaciones:       null.StringFrom(obsAlta),
			})
		})
		if err != nil {
			errores = append(errores, dto.ErrorFilaDTO{Fila: numFila, Error: err.Error()})
			continue
		}

		exitosos = append(exitosos, dto.EquipoImportadoDTO{
			ID:          equipo.ID,
			NInventario: equipo.NInventario,
			NSSerial:    equipo.NSSerial,
		})
	}

	s.logger.Info("importación terminada",
		zap.Int("exitosos", len(exitosos)),
		zap.Int("errores", len(errores)),
		zap.Uint64("usuarioID", usuario.ID))

	return &dto.ResultadoImportacionDTO{
		Message:    fmt.Sprintf("Importación completada: %d exitosos, %d errores", len(exitosos), len(errores)),
		Importados: len(exitosos),
		Exitosos:   exitosos,
		Errores:    errores,
		Total:      len(payload.Data),
	}, nil
}

// GenerarPlantilla devuelve un CSV de ejemplo con la cabecera esperada.
// El BOM inicial es para que Excel lo abra como UTF-8.
func (s *ImportService) GenerarPlantilla() []byte {
	var b strings.Builder
	b.WriteString("\uFEFF")
	b.WriteString("N° Orden;N° de Inventario;Catálogo;N/S;GEBIPA;Tipo;Destino;Observaciones;Estado\n")
	b.WriteString("1;INV-0001;CAT-100;SN-0001;GB-01;Equipo;PZBP;;Activo\n")
	b.WriteString("2;INV-0002;CAT-100;SN-0002;GB-01;Batería;;Repuesto;Activo\n")
	return []byte(b.String())
}

// filaDeCruda proyecta una fila del cuerpo de importación sobre la
// estructura tipada: primero por el mapping de columnas y, si no hay
// columna mapeada, por la clave de la entidad tal cual.
func filaDeCruda(cruda map[string]interface{}, mapping map[string]string) dto.FilaImportada {
	get := func(campo string) string {
		if col, ok := mapping[campo]; ok && col != "" {
			if v, ok := cruda[col]; ok {
				return valorATexto(v)
			}
		}
		return valorATexto(cruda[campo])
	}

	fila := dto.FilaImportada{
		NOrden:        get("n_orden"),
		NInventario:   get("n_inventario"),
		Catalogo:      get("catalogo"),
		NSSerial:      get("ns_serial"),
		Gebipa:        get("gebipa"),
		TipoEquipo:    get("tipo_equipo"),
		Destino:       get("destino"),
		Observaciones: get("observaciones"),
		Estado:        get("estado"),
	}

	if v, ok := cruda["_rowIndex"]; ok {
		if n, err := strconv.Atoi(valorATexto(v)); err == nil {
			fila.RowIndex = n
		}
	}
	if v, ok := cruda["destino_id"]; ok {
		if n, err := strconv.ParseUint(valorATexto(v), 10, 64); err == nil && n > 0 {
			fila.DestinoID = &n
		}
	}
	return fila
}

// valorATexto normaliza los valores JSON: los números llegan como
// float64 y los enteros no deben arrastrar decimales.
func valorATexto(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
