package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDestinos crea los destinos por defecto de la planta.
func SeedDestinos(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Sembrando destinos...")

	if err := seedDestinos(ctx, db); err != nil {
		log.Fatalf("error al sembrar destinos: %v", err)
	}
	log.Println("Destinos sembrados.")
}

// SeedUsuarios crea las cuentas iniciales admin y observador.
func SeedUsuarios(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Sembrando usuarios...")

	if err := seedUsuarios(ctx, db); err != nil {
		log.Fatalf("error al sembrar usuarios: %v", err)
	}
	log.Println("Usuarios sembrados.")
}
