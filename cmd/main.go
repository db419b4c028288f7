package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/taskdo/taskdo-server/internal/api/web/handler"
	"github.com/taskdo/taskdo-server/internal/api/web/middleware"
	"github.com/taskdo/taskdo-server/internal/api/web/router"
	"github.com/taskdo/taskdo-server/internal/api/web/session"
	"github.com/taskdo/taskdo-server/internal/api/web/view"
	"github.com/taskdo/taskdo-server/internal/config"
	"github.com/taskdo/taskdo-server/internal/logger"
	"github.com/taskdo/taskdo-server/internal/model"
	"github.com/taskdo/taskdo-server/internal/repository/postgres"
	"github.com/taskdo/taskdo-server/internal/requestctx"
	"github.com/taskdo/taskdo-server/internal/server"
	"github.com/taskdo/taskdo-server/internal/service"
	"github.com/taskdo/taskdo-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)

	tokenManager := token.NewJWT(cfg.Session.Secret)
	sessions := session.NewManager(tokenManager)
	ctxMgr := requestctx.NewManager()

	authService := service.NewAuth(userRepo, logger)
	taskService := service.NewTask(taskRepo, userRepo, logger)

	httpServer := registerHTTPServer(logger, authService, taskService, sessions, userRepo, ctxMgr, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	logger *logger.Logger,
	authService *service.Auth,
	taskService *service.Task,
	sessions *session.Manager,
	userStore model.UserStore,
	ctxMgr model.ContextManager,
	addr string,
) *server.HTTPServer {
	views, err := view.NewRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", "error", err)
	}

	h := router.New(router.Config{
		Auth:         handler.NewAuth(authService, sessions, ctxMgr, views, logger),
		Tasks:        handler.NewTasks(taskService, ctxMgr, views, logger),
		Authenticate: middleware.NewAuthenticate(sessions, userStore, ctxMgr, logger),
		Guard:        middleware.NewRequireUser(ctxMgr, logger),
		Logging:      middleware.NewLogging(logger),
	})

	return server.NewHTTPServer(h, addr, logger)
}
