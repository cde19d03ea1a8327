package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kiosk_checkin/backend/internal/config"
	"github.com/kiosk_checkin/backend/internal/crm"
	httpapi "github.com/kiosk_checkin/backend/internal/http"
	"github.com/kiosk_checkin/backend/internal/llm"
	"github.com/kiosk_checkin/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "kiosk-backend").Logger()

	var crmClient crm.Client
	crmBase := cfg.ResolveCRMBaseURL()
	switch {
	case crmBase != "" && cfg.CRMAPIKey != "":
		crmClient = &crm.HTTPClient{BaseURL: crmBase, APIKey: cfg.CRMAPIKey}
	case cfg.Env == "dev":
		crmClient = crm.NewMock()
		logger.Info().Msg("using mock CRM client")
	default:
		logger.Fatal().Msg("CRM_SUBDOMAIN and CRM_API_KEY are required")
	}

	checkin := &service.CheckIn{CRM: crmClient, Logger: logger}

	var completer llm.Completer
	if cfg.OpenAIAPIKey == "" && cfg.Env == "dev" {
		completer = llm.MockCompleter{}
		logger.Info().Msg("using mock completer")
	} else {
		completer = &llm.OpenAIClient{BaseURL: cfg.OpenAIBaseURL, APIKey: cfg.OpenAIAPIKey}
	}

	router := httpapi.Router(cfg, checkin, completer, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
