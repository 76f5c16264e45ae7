package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/chathaven/chathaven/internal/adapters/http"
	"github.com/chathaven/chathaven/internal/adapters/ws"
	"github.com/chathaven/chathaven/internal/app"
	"github.com/chathaven/chathaven/internal/config"
	"github.com/chathaven/chathaven/internal/domain"
	"github.com/chathaven/chathaven/internal/responder"
	"github.com/chathaven/chathaven/internal/storage/sqlite"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
	}

	directory := app.NewDirectory()

	// Persistence is advisory; a broken store never keeps the relay down.
	var sink app.Sink
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DBPath).Msg("persistence disabled")
	} else {
		sink = store
		defer store.Close()
	}

	var bridge app.Responder
	if cfg.OpenAI.APIKey != "" {
		bridge = responder.NewOpenAI(responder.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			Timeout: cfg.OpenAI.Timeout,
		})
	} else {
		log.Warn().Str("room", cfg.ResponderRoom).Msg("no API key, responder bridge disabled")
	}

	hub := ws.NewHub(directory)
	engine := &app.Engine{
		Directory:     directory,
		Typing:        app.NewTypingSet(),
		Limiter:       app.NewMessageRateLimiter(cfg.MessageRate, cfg.MessageWindow),
		Broadcast:     hub,
		Sink:          sink,
		Responder:     bridge,
		BotName:       cfg.BotName,
		ResponderRoom: domain.RoomName(cfg.ResponderRoom),
	}

	ctrl := ws.NewChatWSController(engine, hub, cfg)
	r := router.SetupRouter(ctx, cfg, ctrl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("ChatHaven server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	engine.Drain()
	log.Info().Msg("Server exited gracefully")
}
