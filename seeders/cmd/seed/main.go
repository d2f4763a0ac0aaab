package main

import (
	"flag"
	"log"

	"inventario-pzbp/pkg/config"
	"inventario-pzbp/pkg/database/postgresql"
	"inventario-pzbp/seeders"
)

func main() {
	runDestinos := flag.Bool("destinos", false, "Sembrar los destinos por defecto")
	runUsuarios := flag.Bool("usuarios", false, "Sembrar los usuarios admin y observador")
	runAll := flag.Bool("all", false, "Sembrar todo")
	flag.Parse()

	if !*runDestinos && !*runUsuarios && !*runAll {
		log.Println("No se seleccionó ningún seeder.")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	if err := postgresql.RunMigrations(cfg.Postgres.DSN); err != nil {
		log.Fatalf("no se pudieron aplicar las migraciones: %v", err)
	}

	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if *runDestinos || *runAll {
		seeders.SeedDestinos(db)
	}
	if *runUsuarios || *runAll {
		seeders.SeedUsuarios(db)
	}
	log.Println("Siembra completada.")
}
