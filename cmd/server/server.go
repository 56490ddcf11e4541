package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmforge/initiative-api/internal/auth"
	"github.com/dmforge/initiative-api/internal/config"
	"github.com/dmforge/initiative-api/internal/errors"
	v1alpha1 "github.com/dmforge/initiative-api/internal/handlers/api/v1alpha1"
	"github.com/dmforge/initiative-api/internal/orchestrators/battle"
	"github.com/dmforge/initiative-api/internal/orchestrators/encounter"
	"github.com/dmforge/initiative-api/internal/orchestrators/group"
	"github.com/dmforge/initiative-api/internal/orchestrators/user"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
	"github.com/dmforge/initiative-api/internal/pkg/idgen"
	redisclient "github.com/dmforge/initiative-api/internal/redis"
	"github.com/dmforge/initiative-api/internal/repositories/battles"
	"github.com/dmforge/initiative-api/internal/repositories/encounters"
	"github.com/dmforge/initiative-api/internal/repositories/groups"
	"github.com/dmforge/initiative-api/internal/repositories/users"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `Start the initiative API server with all configured services.`,
	RunE:  runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	handler, err := buildHandler(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- errors.Wrap(err, "failed to serve")
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down HTTP server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed, closing", "err", err)
			return srv.Close()
		}
		slog.Info("server stopped gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

// buildHandler wires repositories, orchestrators and the route table.
func buildHandler(cfg *config.Config) (http.Handler, error) {
	client, err := redisclient.NewClient(cfg.RedisAddr, nil)
	if err != nil {
		return nil, err
	}

	clk := clock.New()

	battleRepo, err := battles.NewRedisRepository(&battles.Config{Client: client, Clock: clk})
	if err != nil {
		return nil, err
	}
	encounterRepo, err := encounters.NewRedisRepository(&encounters.Config{Client: client, Clock: clk})
	if err != nil {
		return nil, err
	}
	groupRepo, err := groups.NewRedisRepository(&groups.Config{Client: client, Clock: clk})
	if err != nil {
		return nil, err
	}
	userRepo, err := users.NewRedisRepository(&users.Config{Client: client, Clock: clk})
	if err != nil {
		return nil, err
	}

	authSvc, err := auth.NewService(&auth.Config{
		Secret:   cfg.JWTSecret,
		TokenTTL: cfg.TokenTTL,
		Clock:    clk,
	})
	if err != nil {
		return nil, err
	}

	userSvc, err := user.NewOrchestrator(&user.Config{
		UserRepo:    userRepo,
		AuthService: authSvc,
		IDGenerator: idgen.NewPrefixed("usr"),
	})
	if err != nil {
		return nil, err
	}

	battleSvc, err := battle.NewOrchestrator(&battle.Config{
		BattleRepo:  battleRepo,
		GroupRepo:   groupRepo,
		IDGenerator: idgen.NewPrefixed("ch"),
		Clock:       clk,
		BattleTTL:   cfg.BattleTTL,
	})
	if err != nil {
		return nil, err
	}

	encounterSvc, err := encounter.NewOrchestrator(&encounter.Config{
		EncounterRepo: encounterRepo,
		BattleService: battleSvc,
		IDGenerator:   idgen.NewPrefixed("cb"),
	})
	if err != nil {
		return nil, err
	}

	groupSvc, err := group.NewOrchestrator(&group.Config{
		GroupRepo:   groupRepo,
		IDGenerator: idgen.NewPrefixed("grp"),
	})
	if err != nil {
		return nil, err
	}

	return v1alpha1.NewRouter(&v1alpha1.RouterConfig{
		AuthService:      authSvc,
		UserService:      userSvc,
		BattleService:    battleSvc,
		EncounterService: encounterSvc,
		GroupService:     groupSvc,
	})
}
