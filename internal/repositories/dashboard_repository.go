package repositories

import (
	"context"

	"inventario-pzbp/internal/dto"
	"inventario-pzbp/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DashboardRepositoryInterface interface {
	GetContadores(ctx context.Context) (*dto.ContadoresDTO, error)
	GetDistribucionPorDestino(ctx context.Context) ([]dto.DistribucionDestinoDTO, error)
	GetConteoPorEstado(ctx context.Context) ([]dto.EstadoCantidadDTO, error)
	GetConteoPorTipo(ctx context.Context) ([]dto.TipoCantidadDTO, error)
	GetEvolucionMovimientos(ctx context.Context, dias int) ([]dto.EvolucionPuntoDTO, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
}

func NewDashboardRepository(storage *pgxpool.Pool) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage}
}

// Los equipos dados de baja no cuentan en el tablero; su rastro vive
// en el historial.
func (r *DashboardRepository) GetContadores(ctx context.Context) (*dto.ContadoresDTO, error) {
	var c dto.ContadoresDTO
	err := r.storage.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE tipo_equipo = $1),
			COUNT(*) FILTER (WHERE tipo_equipo = $2),
			COUNT(*) FILTER (WHERE tipo_equipo = $3)
		FROM equipos
		WHERE estado <> $4`,
		entities.TipoEquipoRadio, entities.TipoEquipoBateria, entities.TipoEquipoBase,
		entities.EstadoDadoDeBaja,
	).Scan(&c.TotalEquipos, &c.TotalRadios, &c.TotalBaterias, &c.TotalBases)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *DashboardRepository) GetDistribucionPorDestino(ctx context.Context) ([]dto.DistribucionDestinoDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT
			d.id, d.nombre, d.codigo, d.color,
			COUNT(e.id),
			COUNT(e.id) FILTER (WHERE e.tipo_equipo = $1),
			COUNT(e.id) FILTER (WHERE e.tipo_equipo = $2),
			COUNT(e.id) FILTER (WHERE e.tipo_equipo = $3)
		FROM destinos d
		LEFT JOIN equipos e ON e.destino_id = d.id AND e.estado <> $4
		WHERE d.activo = TRUE
		GROUP BY d.id, d.nombre, d.codigo, d.color
		ORDER BY COUNT(e.id) DESC, d.nombre ASC`,
		entities.TipoEquipoRadio, entities.TipoEquipoBateria, entities.TipoEquipoBase,
		entities.EstadoDadoDeBaja,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distribucion := make([]dto.DistribucionDestinoDTO, 0)
	for rows.Next() {
		var d dto.DistribucionDestinoDTO
		if err := rows.Scan(&d.ID, &d.Nombre, &d.Codigo, &d.Color, &d.Cantidad, &d.Radios, &d.Baterias, &d.Bases); err != nil {
			return nil, err
		}
		distribucion = append(distribucion, d)
	}
	return distribucion, rows.Err()
}

func (r *DashboardRepository) GetConteoPorEstado(ctx context.Context) ([]dto.EstadoCantidadDTO, error) {
	rows, err := r.storage.Query(ctx,
		"SELECT estado, COUNT(*) FROM equipos GROUP BY estado ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conteos := make([]dto.EstadoCantidadDTO, 0)
	for rows.Next() {
		var c dto.EstadoCantidadDTO
		if err := rows.Scan(&c.Estado, &c.Cantidad); err != nil {
			return nil, err
		}
		conteos = append(conteos, c)
	}
	return conteos, rows.Err()
}

func (r *DashboardRepository) GetConteoPorTipo(ctx context.Context) ([]dto.TipoCantidadDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT tipo_equipo, COUNT(*) FROM equipos
		WHERE estado <> $1
		GROUP BY tipo_equipo ORDER BY COUNT(*) DESC`,
		entities.EstadoDadoDeBaja)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conteos := make([]dto.TipoCantidadDTO, 0)
	for rows.Next() {
		var c dto.TipoCantidadDTO
		if err := rows.Scan(&c.TipoEquipo, &c.Cantidad); err != nil {
			return nil, err
		}
		conteos = append(conteos, c)
	}
	return conteos, rows.Err()
}

// GetEvolucionMovimientos agrupa los movimientos por día y tipo para
// la gráfica de evolución del tablero.
func (r *DashboardRepository) GetEvolucionMovimientos(ctx context.Context, dias int) ([]dto.EvolucionPuntoDTO, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT TO_CHAR(fecha_movimiento, 'YYYY-MM-DD') AS dia, tipo_movimiento, COUNT(*)
		FROM historial_movimientos
		WHERE fecha_movimiento >= NOW() - ($1 || ' days')::INTERVAL
		GROUP BY dia, tipo_movimiento
		ORDER BY dia ASC`,
		dias)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	puntos := make([]dto.EvolucionPuntoDTO, 0)
	for rows.Next() {
		var p dto.EvolucionPuntoDTO
		if err := rows.Scan(&p.Fecha, &p.TipoMovimiento, &p.Cantidad); err != nil {
			return nil, err
		}
		puntos = append(puntos, p)
	}
	return puntos, rows.Err()
}
