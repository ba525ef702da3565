package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rpggio/teamboard/internal/config"
	"github.com/rpggio/teamboard/internal/domain/project"
	"github.com/rpggio/teamboard/internal/domain/task"
	"github.com/rpggio/teamboard/internal/domain/user"
	"github.com/rpggio/teamboard/internal/repository"
	"github.com/rpggio/teamboard/internal/seed"
	"github.com/rpggio/teamboard/internal/sqlite"
	"github.com/rpggio/teamboard/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := sqlite.NewUserRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)

	if cfg.Seed.Enabled {
		err := seed.Load(context.Background(), seed.Repositories{
			Users:    userRepo,
			Projects: projectRepo,
			Tasks:    taskRepo,
		}, logger)
		if err != nil {
			logger.Error("failed to load seed data", "error", err)
			os.Exit(1)
		}
	}

	userSvc := user.NewService(userRepo, logger)
	projectSvc := project.NewService(projectRepo, logger)
	taskSvc := task.NewService(taskRepo, logger)

	router := transport.NewServer(transport.Config{
		Services: transport.Services{
			Users:    userSvc,
			Projects: projectSvc,
			Tasks:    taskSvc,
		},
		Sessions: sessionRepo,
		Resolver: &sessionResolver{sessions: sessionRepo, users: userRepo},
		Logger:   logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// sessionResolver resolves bearer tokens against stored sessions.
type sessionResolver struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
}

func (r *sessionResolver) ResolveUser(ctx context.Context, token string) (*user.User, error) {
	userID, err := r.sessions.GetUserID(ctx, transport.HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, transport.ErrUnauthorized
		}
		return nil, err
	}
	u, err := r.users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, transport.ErrUnauthorized
		}
		return nil, err
	}
	return u, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
