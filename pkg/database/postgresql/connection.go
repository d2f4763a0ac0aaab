package postgresql

import (
	"context"
	"database/sql"
	"log"

	"inventario-pzbp/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func ConnectDB(dsn string) *pgxpool.Pool {
	dbpool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Error al crear el pool de conexiones: %v", err)
	}

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("No se pudo conectar a PostgreSQL: %v", err)
	}

	log.Println("Conectado a PostgreSQL")
	return dbpool
}

// RunMigrations aplica las migraciones embebidas con goose. Se ejecuta
// en el arranque; goose ignora las ya aplicadas.
func RunMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Embed)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.Up(db, ".")
}
