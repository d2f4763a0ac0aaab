package repositories

import (
	"context"
	"time"

	"inventario-pzbp/internal/dto"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FilaReporte es una fila plana del inventario lista para volcar a una
// hoja de cálculo o a un PDF.
type FilaReporte struct {
	NOrden        string
	NInventario   string
	Catalogo      string
	NSSerial      string
	Gebipa        string
	TipoEquipo    string
	DestinoNombre string
	Estado        string
	Observaciones string
	FechaAlta     time.Time
}

type ReportRepositoryInterface interface {
	GetInventario(ctx context.Context, filter dto.EquipoFilter) ([]FilaReporte, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{storage: storage}
}

// GetInventario devuelve el inventario completo ya aplanado, ordenado
// por destino y número de inventario. Sin paginación: los reportes
// siempre son sobre el conjunto filtrado entero.
func (r *ReportRepository) GetInventario(ctx context.Context, filter dto.EquipoFilter) ([]FilaReporte, error) {
	query, args, err := psql.Select(
		"COALESCE(e.n_orden, '')",
		"COALESCE(e.n_inventario, '')",
		"COALESCE(e.catalogo, '')",
		"COALESCE(e.ns_serial, '')",
		"COALESCE(e.gebipa, '')",
		"e.tipo_equipo",
		"COALESCE(d.nombre, 'Sin asignar')",
		"e.estado",
		"COALESCE(e.observaciones, '')",
		"e.fecha_alta",
	).
		From("equipos e").
		LeftJoin("destinos d ON d.id = e.destino_id").
		Where(buildEquipoWhere(filter)).
		OrderBy("COALESCE(d.nombre, 'Sin asignar') ASC", "e.n_inventario ASC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	filas := make([]FilaReporte, 0)
	for rows.Next() {
		var f FilaReporte
		if err := rows.Scan(&f.NOrden, &f.NInventario, &f.Catalogo, &f.NSSerial, &f.Gebipa,
			&f.TipoEquipo, &f.DestinoNombre, &f.Estado, &f.Observaciones, &f.FechaAlta); err != nil {
			return nil, err
		}
		filas = append(filas, f)
	}
	return filas, rows.Err()
}
