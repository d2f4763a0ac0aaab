package dto

// FilaImportada es la forma tipada de una fila ya mapeada: cada campo
// de la entidad en su sitio, en lugar de objetos con claves dinámicas.
// Los tags JSON conservan los nombres que espera el cliente.
type FilaImportada struct {
	RowIndex      int    `json:"_rowIndex,omitempty"`
	NOrden        string `json:"n_orden,omitempty"`
	NInventario   string `json:"n_inventario,omitempty"`
	Catalogo      string `json:"catalogo,omitempty"`
	NSSerial      string `json:"ns_serial,omitempty"`
	Gebipa        string `json:"gebipa,omitempty"`
	TipoEquipo    string `json:"tipo_equipo,omitempty"`
	Destino       string `json:"destino,omitempty"`
	Observaciones string `json:"observaciones,omitempty"`
	Estado        string `json:"estado,omitempty"`

	// Resultado de la resolución de destino. DestinoNombre vale
	// "No encontrado" cuando la etiqueta no casó con ningún destino.
	DestinoID     *uint64 `json:"destino_id"`
	DestinoNombre string  `json:"destino_nombre,omitempty"`
	DestinoColor  string  `json:"destino_color,omitempty"`
}

type VistaPreviaDTO struct {
	Columns     []string          `json:"columns"`
	Data        []FilaImportada   `json:"data"`
	AutoMapping map[string]string `json:"autoMapping"`
	Destinos    []DestinoCortoDTO `json:"destinos"`
	TotalRows   int               `json:"totalRows"`
}

// ImportarRequestDTO admite filas con las claves de la entidad (las
// que devuelve la vista previa) o con las etiquetas de columna del
// archivo acompañadas de su mapping.
type ImportarRequestDTO struct {
	Data    []map[string]interface{} `json:"data" validate:"required,min=1"`
	Mapping map[string]string        `json:"mapping"`
}

type EquipoImportadoDTO struct {
	ID          uint64 `json:"id"`
	NInventario string `json:"n_inventario"`
	NSSerial    string `json:"ns_serial,omitempty"`
}

type ErrorFilaDTO struct {
	Fila  int    `json:"row"`
	Error string `json:"error"`
}

type ResultadoImportacionDTO struct {
	Message    string               `json:"message"`
	Importados int                  `json:"importados"`
	Exitosos   []EquipoImportadoDTO `json:"exitosos"`
	Errores    []ErrorFilaDTO       `json:"errores"`
	Total      int                  `json:"total"`
}
