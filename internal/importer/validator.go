package importer

import (
	"context"
	"fmt"
	"strings"

	"inventario-pzbp/internal/dto"
)

// ExistenciaStore responde si un identificador ya está persistido.
// Lo implementa el repositorio de equipos.
type ExistenciaStore interface {
	ExisteNSSerial(ctx context.Context, serial string) (bool, error)
	ExisteNInventario(ctx context.Context, inventario string) (bool, error)
}

// ValidadorLote valida filas una a una pero con memoria del lote: un
// duplicado dentro del mismo archivo se detecta igual que uno ya
// persistido. Usar una instancia nueva por cada importación.
type ValidadorLote struct {
	store             ExistenciaStore
	serialesVistos    map[string]bool
	inventariosVistos map[string]bool
}

func NewValidadorLote(store ExistenciaStore) *ValidadorLote {
	return &ValidadorLote{
		store:             store,
		serialesVistos:    make(map[string]bool),
		inventariosVistos: make(map[string]bool),
	}
}

// Validar aplica las reglas en orden fijo: campos requeridos, serial
// contra lo persistido, serial contra el lote, inventario contra lo
// persistido, inventario contra el lote. El primer fallo corta; si la
// fila pasa, sus identificadores quedan registrados en el lote.
func (v *ValidadorLote) Validar(ctx context.Context, fila dto.FilaImportada) error {
	serial := strings.TrimSpace(fila.NSSerial)
	inventario := strings.TrimSpace(fila.NInventario)

	// ambos identificadores son obligatorios
	if serial == "" || inventario == "" {
		return fmt.Errorf("Faltan campos requeridos: N° de inventario o N/S")
	}

	existe, err := v.store.ExisteNSSerial(ctx, serial)
	if err != nil {
		return fmt.Errorf("error al verificar N/S: %w", err)
	}
	if existe {
		return fmt.Errorf("N/S duplicado: %s", serial)
	}
	if v.serialesVistos[serial] {
		return fmt.Errorf("N/S duplicado en el archivo: %s", serial)
	}

	existe, err = v.store.ExisteNInventario(ctx, inventario)
	if err != nil {
		return fmt.Errorf("error al verificar N° de inventario: %w", err)
	}
	if existe {
		return fmt.Errorf("N° de inventario duplicado: %s", inventario)
	}
	if v.inventariosVistos[inventario] {
		return fmt.Errorf("N° de inventario duplicado en el archivo: %s", inventario)
	}

	v.serialesVistos[serial] = true
	v.inventariosVistos[inventario] = true
	return nil
}
