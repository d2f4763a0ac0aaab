package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventario-pzbp/internal/controllers"
	"inventario-pzbp/internal/services"
	"inventario-pzbp/pkg/middleware"
)

func runAuthRouter(
	api *echo.Group,
	secure *echo.Group,
	authService services.AuthServiceInterface,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	authCtrl := controllers.NewAuthController(authService, logger)

	// login y refresh son las únicas rutas sin token
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh", authCtrl.Refresh)
	}

	secureAuth := secure.Group("/auth")
	{
		secureAuth.POST("/logout", authCtrl.Logout)
		secureAuth.GET("/verify", authCtrl.Me)
		secureAuth.GET("/me", authCtrl.Me)
		secureAuth.POST("/change-password", authCtrl.ChangePassword)
	}

	// gestión de usuarios, solo administradores
	usuarios := secure.Group("/auth/usuarios", authMW.RequireAdmin)
	{
		usuarios.GET("", authCtrl.GetUsuarios)
		usuarios.POST("", authCtrl.CreateUsuario)
		usuarios.PATCH("/:id/activo", authCtrl.SetUsuarioActivo)
		usuarios.DELETE("/:id", authCtrl.DeleteUsuario)
	}
}
