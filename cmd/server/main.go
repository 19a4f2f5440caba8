package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yonyossef/yiftach-sign/internal/api"
	"github.com/yonyossef/yiftach-sign/internal/api/handler"
	"github.com/yonyossef/yiftach-sign/internal/core/ports"
	"github.com/yonyossef/yiftach-sign/internal/core/service"
	"github.com/yonyossef/yiftach-sign/internal/infrastructure/config"
	"github.com/yonyossef/yiftach-sign/internal/infrastructure/credentials"
	memorysession "github.com/yonyossef/yiftach-sign/internal/infrastructure/session/memory"
	redissession "github.com/yonyossef/yiftach-sign/internal/infrastructure/session/redis"
	"github.com/yonyossef/yiftach-sign/internal/infrastructure/store/jsonfile"
	mongostore "github.com/yonyossef/yiftach-sign/internal/infrastructure/store/mongo"
	"github.com/yonyossef/yiftach-sign/pkg/logger"
)

func main() {
	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load()

	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") != "production",
	})

	cfg := config.Load(log)
	ctx := context.Background()

	var checks []handler.ReadinessCheck

	// --- Panel storage ---
	var panelRepo ports.PanelRepository
	switch cfg.StoreDriver {
	case config.StoreMongo:
		repo, err := mongostore.NewPanelRepository(ctx, mongostore.Config{
			URI:         cfg.Mongo.URI,
			Database:    cfg.Mongo.Database,
			PingTimeout: cfg.Mongo.PingTimeout,
		}, log)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = repo.Close(ctx) }()
		panelRepo = repo
		checks = append(checks, handler.ReadinessCheck{Name: "mongodb", Check: repo.Ping})
	case config.StoreFile:
		repo := jsonfile.NewPanelRepository(cfg.DataFile, log)
		panelRepo = repo
		checks = append(checks, handler.ReadinessCheck{
			Name: "panel_file",
			Check: func(ctx context.Context) error {
				_, err := repo.Load(ctx)
				return err
			},
		})
	default:
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown store driver")
	}

	// --- Session backend ---
	var sessions ports.SessionStore
	switch cfg.SessionBackend {
	case config.SessionsRedis:
		store, err := redissession.NewStore(ctx, redissession.Config{
			Addr:        cfg.Redis.Addr,
			DB:          cfg.Redis.DB,
			PingTimeout: cfg.Redis.PingTimeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = store.Close() }()
		sessions = store
		checks = append(checks, handler.ReadinessCheck{Name: "redis", Check: store.Ping})
	case config.SessionsMemory:
		sessions = memorysession.NewStore()
	default:
		log.Fatal().Str("backend", cfg.SessionBackend).Msg("unknown session backend")
	}

	if cfg.SessionSecret == "" {
		log.Warn().Msg("SESSION_SECRET not set, session cookies will not survive a restart")
		cfg.SessionSecret = randomSecret()
	}

	credSource := credentials.NewSource(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.CredentialsFile, log)
	authService := service.NewAuthService(credSource, sessions, cfg.SessionSecret, cfg.SessionTTL, log)
	panelService := service.NewPanelService(panelRepo, log)

	e := api.NewRouter(api.RouterOptions{
		Auth:            authService,
		Panels:          panelService,
		SessionTTL:      cfg.SessionTTL,
		SecureCookies:   cfg.Production(),
		StaticDir:       cfg.StaticDir,
		ReadinessChecks: checks,
		Log:             log,
	})

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("store", cfg.StoreDriver).Str("sessions", cfg.SessionBackend).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
