package main

import (
	"context"
	"net/http"
	"time"

	"inventario-pzbp/internal/repositories"
	"inventario-pzbp/internal/routes"
	"inventario-pzbp/pkg/config"
	"inventario-pzbp/pkg/database/postgresql"
	apperrors "inventario-pzbp/pkg/errors"
	applogger "inventario-pzbp/pkg/logger"
	"inventario-pzbp/pkg/service"
	"inventario-pzbp/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	e := echo.New()
	logger := applogger.NewLogger()
	defer logger.Sync()

	cfg := config.New()

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("pánico recuperado",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Error interno del servidor", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{"Content-Disposition"},
	}))

	e.Validator = utils.NewValidator(validator.New())

	if err := postgresql.RunMigrations(cfg.Postgres.DSN); err != nil {
		logger.Fatal("no se pudieron aplicar las migraciones", zap.Error(err))
	}

	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("no se pudo conectar a Redis", zap.Error(err), zap.String("address", cfg.Redis.Address))
	}

	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	routes.InitRouter(e, dbConn, redisClient, jwtSvc, cfg, logger)

	// limpieza periódica de sesiones vencidas
	sesionRepo := repositories.NewSesionRepository(dbConn)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			n, err := sesionRepo.DeleteExpiradas(context.Background())
			if err != nil {
				logger.Warn("fallo en la limpieza de sesiones", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("sesiones vencidas eliminadas", zap.Int64("total", n))
			}
		}
	}()

	logger.Info("servidor iniciado", zap.String("puerto", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("error al iniciar el servidor", zap.Error(err))
	}
}
