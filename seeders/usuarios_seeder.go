package seeders

import (
	"context"
	"fmt"
	"log"
	"os"

	"inventario-pzbp/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type usuarioSeed struct {
	Username       string
	Email          string
	Rol            string
	NombreCompleto string
}

var usuariosPorDefecto = []usuarioSeed{
	{"admin", "admin@inventario.com", "admin", "Administrador del Sistema"},
	{"observador", "observador@inventario.com", "observador", "Usuario Observador"},
}

func seedUsuarios(ctx context.Context, db *pgxpool.Pool) error {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Println("  - SEED_ADMIN_PASSWORD no definido, se usa la contraseña por defecto")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("no se pudo generar el hash de la contraseña: %w", err)
	}

	for _, u := range usuariosPorDefecto {
		var existe bool
		if err := db.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM usuarios WHERE username = $1)", u.Username).Scan(&existe); err != nil {
			return fmt.Errorf("no se pudo comprobar el usuario %s: %w", u.Username, err)
		}
		if existe {
			log.Printf("  - el usuario %s ya existe, se omite", u.Username)
			continue
		}

		_, err := db.Exec(ctx, `
			INSERT INTO usuarios (username, password_hash, email, rol, nombre_completo)
			VALUES ($1, $2, $3, $4, $5)`,
			u.Username, hash, u.Email, u.Rol, u.NombreCompleto)
		if err != nil {
			return fmt.Errorf("no se pudo insertar el usuario %s: %w", u.Username, err)
		}
	}
	return nil
}
