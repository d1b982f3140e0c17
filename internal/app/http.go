package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ekovalev/go-taskhub/internal/config"
	"github.com/ekovalev/go-taskhub/internal/delivery/http/v1"
	"github.com/ekovalev/go-taskhub/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT
	authService := services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.TokenTTL,
	)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool)
	handler := v1.New(globalLogger, authService, taskService)

	api := router.Group("/api")
	api.GET("/health", handler.HandleHealth)

	authRouter := api.Group("/auth")
	authRouter.POST("/signup", handler.HandleSignUp)
	authRouter.POST("/signin", handler.HandleSignIn)
	authRouter.POST("/signout", handler.HandleSignOut)
	authRouter.GET("/me", handler.HandleAuthMiddleware, handler.HandleMe)

	taskRouter := api.Group("/tasks", handler.HandleAuthMiddleware)
	taskRouter.POST("/", handler.HandleCreateTask)
	taskRouter.GET("/", handler.HandleListTasks)
	taskRouter.GET("/:id", handler.HandleGetTask)
	taskRouter.PUT("/:id", handler.HandleUpdateTask)
	taskRouter.DELETE("/:id", handler.HandleDeleteTask)
	taskRouter.PATCH("/:id/complete", handler.HandleCompleteTask)
}
