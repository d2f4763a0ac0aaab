package dto

type DestinoCortoDTO struct {
	ID     uint64 `json:"id"`
	Nombre string `json:"nombre"`
	Codigo string `json:"codigo"`
}

type CreateDestinoDTO struct {
	Nombre      string `json:"nombre" validate:"required,max=50"`
	Codigo      string `json:"codigo" validate:"required,max=10"`
	Descripcion string `json:"descripcion"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
}

type UpdateDestinoDTO struct {
	Nombre      *string `json:"nombre" validate:"omitempty,max=50"`
	Codigo      *string `json:"codigo" validate:"omitempty,max=10"`
	Descripcion *string `json:"descripcion"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
}

type DeleteDestinoResultDTO struct {
	Message     string `json:"message"`
	Desactivado bool   `json:"desactivado"`
}
