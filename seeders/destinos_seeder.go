package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type destinoSeed struct {
	Nombre      string
	Codigo      string
	Descripcion string
	Color       string
}

var destinosPorDefecto = []destinoSeed{
	{"PZBP", "PZBP", "Destino PZBP", "#3B82F6"},
	{"SLOR", "SLOR", "Destino SLOR", "#10B981"},
	{"ROSA", "ROSA", "Destino ROSA", "#F59E0B"},
	{"SAFE", "SAFE", "Destino SAFE", "#EF4444"},
	{"OSRO", "OSRO", "Destino OSRO", "#8B5CF6"},
	{"PARA", "PARA", "Destino PARA", "#EC4899"},
	{"SNIC", "SNIC", "Destino SNIC", "#06B6D4"},
	{"VCON", "VCON", "Destino VCON", "#84CC16"},
	{"RLLO", "RLLO", "Destino RLLO", "#F97316"},
	{"ASEC", "ASEC", "Destino ASEC", "#6366F1"},
	{"GCSM", "GCSM", "Destino GCSM", "#14B8A6"},
	{"DIAM", "DIAM", "Destino DIAM", "#A855F7"},
}

func seedDestinos(ctx context.Context, db *pgxpool.Pool) error {
	for _, d := range destinosPorDefecto {
		tag, err := db.Exec(ctx, `
			INSERT INTO destinos (nombre, codigo, descripcion, color)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (nombre) DO NOTHING`,
			d.Nombre, d.Codigo, d.Descripcion, d.Color)
		if err != nil {
			return fmt.Errorf("no se pudo insertar el destino %s: %w", d.Nombre, err)
		}
		if tag.RowsAffected() == 0 {
			log.Printf("  - el destino %s ya existe, se omite", d.Nombre)
		}
	}
	return nil
}
