package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"inventario-pzbp/internal/repositories"
	"inventario-pzbp/internal/services"
	"inventario-pzbp/pkg/config"
	"inventario-pzbp/pkg/middleware"
	"inventario-pzbp/pkg/service"
)

// InitRouter arma todo el grafo de dependencias y cuelga las rutas de
// /api. Los repositorios y servicios se crean una sola vez aquí.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	cfg *config.Config,
	logger *zap.Logger,
) {
	api := e.Group("/api")

	// --- repositorios ---
	txManager := repositories.NewTxManager(dbConn)
	usuarioRepo := repositories.NewUsuarioRepository(dbConn)
	sesionRepo := repositories.NewSesionRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	destinoRepo := repositories.NewDestinoRepository(dbConn)
	equipoRepo := repositories.NewEquipoRepository(dbConn)
	historialRepo := repositories.NewHistorialRepository(dbConn)
	dashboardRepo := repositories.NewDashboardRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)

	// --- servicios ---
	authService := services.NewAuthService(usuarioRepo, sesionRepo, cacheRepo, jwtSvc, logger)
	destinoService := services.NewDestinoService(destinoRepo, logger)
	equipoService := services.NewEquipoService(equipoRepo, destinoRepo, historialRepo, usuarioRepo, txManager, logger)
	historialService := services.NewHistorialService(historialRepo, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, historialRepo, logger)
	importService := services.NewImportService(equipoRepo, destinoRepo, historialRepo, usuarioRepo, txManager, logger)
	reportService := services.NewReportService(reportRepo, dashboardRepo, logger)

	authMW := middleware.NewAuthMiddleware(jwtSvc, authService, logger)

	// Todo lo que cuelga de secure exige un token con sesión viva; los
	// subgrupos de administración añaden RequireAdmin encima.
	secure := api.Group("", authMW.Auth)

	runAuthRouter(api, secure, authService, authMW, logger)
	runDestinoRouter(secure, destinoService, equipoService, authMW, logger)
	runEquipoRouter(secure, equipoService, authMW, logger)
	runHistorialRouter(secure, historialService, logger)
	runDashboardRouter(secure, dashboardService, logger)
	runUploadRouter(secure, importService, cfg, logger)
	runReportRouter(secure, reportService, logger)

	logger.Info("rutas registradas")
}
