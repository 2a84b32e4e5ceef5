package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/harshaldafade/Scheduling-Agent/internal/application"
	"github.com/harshaldafade/Scheduling-Agent/internal/config"
	"github.com/harshaldafade/Scheduling-Agent/internal/datetime"
	httptransport "github.com/harshaldafade/Scheduling-Agent/internal/http"
	"github.com/harshaldafade/Scheduling-Agent/internal/interpreter"
	"github.com/harshaldafade/Scheduling-Agent/internal/llm"
	"github.com/harshaldafade/Scheduling-Agent/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("failed to load timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	resolver := datetime.NewResolver(location, datetime.BusinessHours{
		StartHour: cfg.DayStart,
		EndHour:   cfg.DayEnd,
	})

	llmClient := llm.NewHTTPClient(llm.HTTPConfig{
		BaseURL:           cfg.LLMBaseURL,
		APIKey:            cfg.LLMAPIKey,
		Model:             cfg.LLMModel,
		Temperature:       cfg.LLMTemperature,
		RequestsPerMinute: cfg.LLMRequestsPerMinute,
		Timeout:           cfg.LLMTimeout,
	})

	interp := interpreter.New(llmClient, resolver, logger)
	proposals := application.NewProposalStore(cfg.ProposalTTL, now)

	agentService := application.NewAgentService(storage, storage, interp, proposals, resolver, idGenerator, now, logger)
	userService := application.NewUserService(storage, idGenerator, logger)
	meetingService := application.NewMeetingService(storage, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Agent:    httptransport.NewAgentHandler(agentService, logger),
		Meetings: httptransport.NewMeetingHandler(meetingService, now, logger),
		Users:    httptransport.NewUserHandler(userService, logger),
		Health:   storage.Ping,
	})

	// Every route except the health probe requires the caller identity
	// header supplied by the upstream proxy.
	protected := httptransport.RequireUser(logger)(router)
	handler := httptransport.RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.EqualFold(r.URL.Path, "/healthz") {
			router.ServeHTTP(w, r)
			return
		}
		protected.ServeHTTP(w, r)
	}))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("scheduling agent API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
