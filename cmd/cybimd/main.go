// The cybimd command implements the CYBIM signage player daemon
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/cybim/cybim-signage/api/types/v1alpha1"
	"github.com/cybim/cybim-signage/internal/cybimd/campaign"
	campaignpg "github.com/cybim/cybim-signage/internal/cybimd/campaign/postgres"
	"github.com/cybim/cybim-signage/internal/cybimd/config"
	"github.com/cybim/cybim-signage/internal/cybimd/database"
	"github.com/cybim/cybim-signage/internal/cybimd/playback"
	"github.com/cybim/cybim-signage/internal/cybimd/playback/delivery"
	playbackhttp "github.com/cybim/cybim-signage/internal/cybimd/playback/http"
	"github.com/cybim/cybim-signage/internal/cybimd/ratelimit"
	ratelimitredis "github.com/cybim/cybim-signage/internal/cybimd/ratelimit/redis"
	"github.com/cybim/cybim-signage/internal/cybimd/settings"
	settingspg "github.com/cybim/cybim-signage/internal/cybimd/settings/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	autoStart := flag.Bool("autostart", false, "start playback as soon as the daemon is up")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Setup(cfg.Database, 5, time.Second)
	if err != nil {
		logger.Error("failed to setup database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	hub := delivery.NewHub(logger)
	engine := playback.NewEngine(hub, hub, clock.New(), logger)
	hub.SetSink(engine)

	campaignService := campaign.NewService(campaignpg.NewRepository(db, logger))
	settingsService := settings.NewService(settingspg.NewRepository(db))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      setupRouter(cfg, db, redisClient, engine, campaignService, settingsService, hub, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("starting server",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	go startWhenReady(context.Background(), *autoStart, engine, campaignService, settingsService, logger)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	<-shutdown
	logger.Info("shutting down server...")

	engine.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

// startWhenReady starts playback from stored content when the device
// settings (or the -autostart flag) call for it, retrying until
// something is eligible. Unattended installations boot straight into
// playback this way.
func startWhenReady(ctx context.Context, force bool, engine *playback.Engine, campaigns campaign.Service, deviceSettings settings.Service, logger *slog.Logger) {
	for {
		s, err := deviceSettings.Get(ctx)
		if err == nil {
			if !force && !s.AutoStart {
				return
			}
			var stored []v1alpha1.Campaign
			if stored, err = campaigns.List(ctx); err == nil {
				if err = engine.Start(stored, s); err == nil {
					logger.Info("autostart: playback running", "campaigns", len(stored))
					return
				}
			}
		}
		logger.Warn("autostart: not ready, retrying", "error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(30 * time.Second):
		}
	}
}

// setupRouter creates and configures the HTTP router with all control
// API routes
func setupRouter(cfg *config.Config, db *sql.DB, redisClient *goredis.Client, engine *playback.Engine, campaigns campaign.Service, deviceSettings settings.Service, hub *delivery.Hub, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	limiter := ratelimit.NewService(ratelimitredis.NewStore(redisClient), cfg.RateLimit, logger)
	r.Use(ratelimit.Middleware(limiter, ratelimit.TypeAPIRequest, logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	zlogger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	handler := playbackhttp.NewHandler(engine, campaigns, deviceSettings, hub, zlogger).
		WithSocketLimit(ratelimit.Middleware(limiter, ratelimit.TypeWSConnect, logger))
	r.Mount("/api/v1alpha1", handler.Router())

	return r
}
