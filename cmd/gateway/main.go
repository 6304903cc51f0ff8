// Command gateway runs the ColorMe Booth chat gateway: the HTTP backend for
// the marketing site's chat widget, lead capture, and FAQ knowledge base.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/colormebooth/go-chat-gateway/docs"
	"github.com/colormebooth/go-chat-gateway/internal/config"
	httpapi "github.com/colormebooth/go-chat-gateway/internal/http"
	"github.com/colormebooth/go-chat-gateway/internal/knowledge"
	"github.com/colormebooth/go-chat-gateway/internal/observability"
	"github.com/colormebooth/go-chat-gateway/internal/repo"
	"github.com/colormebooth/go-chat-gateway/internal/session"
	"github.com/colormebooth/go-chat-gateway/internal/sysutil"
	"github.com/colormebooth/go-chat-gateway/internal/webhook"
)

const version = "1.0.0"

// @title        ColorMe Booth Chat Gateway API
// @version      1.0
// @description  Chat, lead capture, and FAQ endpoints backing the website chat widget.
// @BasePath     /api/v1
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	db, err := repo.OpenSQLite(cfg.DBPath, cfg.OTEL.Enabled)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	store, err := buildSessionStore(cfg, db)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Session.Store).Msg("session store setup failed")
	}
	sessions := session.NewManager(store)

	matcher, stopWatch, err := buildKnowledge(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Knowledge.Path).Msg("knowledge base load failed")
	}

	client := webhook.New(webhook.Endpoints{
		Base:        cfg.Webhook.BaseURL,
		LeadCapture: cfg.Webhook.LeadURL,
		Chatbot:     cfg.Webhook.ChatbotURL,
		ContactForm: cfg.Webhook.ContactURL,
	}, cfg.Webhook.Timeout)

	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.BasePath = cfg.APIBasePath

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:        db,
		Sessions:  sessions,
		Webhook:   client,
		Knowledge: matcher,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("base_path", cfg.APIBasePath).
			Str("session_store", cfg.Session.Store).
			Bool("chatbot_configured", client.Endpoints().ChatbotConfigured()).
			Int("knowledge_entries", matcher.Len()).
			Msg("chat gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if stopWatch != nil {
		if err := stopWatch(); err != nil {
			log.Error().Err(err).Msg("knowledge watcher stop failed")
		}
	}
	if err := sessions.Close(); err != nil {
		log.Error().Err(err).Msg("session store close failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown failed")
	}
}

// buildSessionStore maps SESSION_STORE onto a concrete backend. The sqlite
// store rides the transcript database; redis gets its own client.
func buildSessionStore(cfg config.Config, db *gorm.DB) (session.Store, error) {
	opts := session.Options{TTL: cfg.Session.TTL}
	switch cfg.Session.Store {
	case "sqlite":
		opts.DB = db
		return session.NewStore(session.KindSQLite, opts)
	case "redis":
		opts.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPass,
			DB:       cfg.Session.RedisDB,
		})
		return session.NewStore(session.KindRedis, opts)
	default:
		return session.NewStore(session.KindMemory, opts)
	}
}

// buildKnowledge returns the FAQ matcher and, when file watching is enabled,
// a stop function for the watcher.
func buildKnowledge(cfg config.Config) (*knowledge.Matcher, func() error, error) {
	if cfg.Knowledge.Path == "" {
		return knowledge.Default(), nil, nil
	}
	entries, err := knowledge.LoadFile(cfg.Knowledge.Path)
	if err != nil {
		return nil, nil, err
	}
	m := knowledge.NewMatcher(entries)
	if !cfg.Knowledge.Watch {
		return m, nil, nil
	}
	stop, err := knowledge.Watch(cfg.Knowledge.Path, m, log.Logger)
	if err != nil {
		return nil, nil, err
	}
	return m, stop, nil
}
