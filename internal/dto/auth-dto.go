package dto

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UsuarioDTO struct {
	ID             uint64 `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Rol            string `json:"rol"`
	NombreCompleto string `json:"nombre_completo"`
	Activo         bool   `json:"activo"`
	CreatedAt      string `json:"created_at,omitempty"`
}

type LoginResponseDTO struct {
	Token        string     `json:"token"`
	RefreshToken string     `json:"refreshToken"`
	Usuario      UsuarioDTO `json:"usuario"`
}

type CreateUsuarioDTO struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Password       string `json:"password" validate:"required,min=6"`
	Email          string `json:"email" validate:"required,email"`
	Rol            string `json:"rol" validate:"omitempty,oneof=admin observador"`
	NombreCompleto string `json:"nombre_completo" validate:"max=100"`
}

type RefreshRequestDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type SetActivoDTO struct {
	Activo *bool `json:"activo" validate:"required"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	UserID          uint64 `json:"userId"`
}
