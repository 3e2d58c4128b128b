package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/homescribe/homescribe-engine/pkg/ai"
	"github.com/homescribe/homescribe-engine/pkg/config"
	"github.com/homescribe/homescribe-engine/pkg/database"
	"github.com/homescribe/homescribe-engine/pkg/handlers"
	"github.com/homescribe/homescribe-engine/pkg/middleware"
	"github.com/homescribe/homescribe-engine/pkg/repositories"
	"github.com/homescribe/homescribe-engine/pkg/services"
	"github.com/homescribe/homescribe-engine/pkg/storage"
	"github.com/homescribe/homescribe-engine/pkg/transcription"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("database", cfg.Database.Database),
		zap.String("whisper_url", cfg.Whisper.BaseURL),
		zap.String("llm_endpoint", cfg.LLM.Endpoint),
		zap.String("llm_model", cfg.LLM.Model))

	ctx := context.Background()

	if err := database.Migrate(&cfg.Database, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	audioStore, err := storage.NewAudioStore(cfg.Upload.Dir, logger)
	if err != nil {
		logger.Fatal("Failed to create audio store", zap.Error(err))
	}

	transcriber, err := transcription.NewClient(&transcription.Config{
		BaseURL:        cfg.Whisper.BaseURL,
		RequestTimeout: cfg.Whisper.RequestTimeout,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create transcription client", zap.Error(err))
	}

	llm, err := ai.NewClient(&ai.Config{
		Endpoint:              cfg.LLM.Endpoint,
		Model:                 cfg.LLM.Model,
		APIKey:                cfg.LLM.APIKey,
		RequestTimeout:        cfg.LLM.RequestTimeout,
		SummaryTemperature:    cfg.LLM.SummaryTemperature,
		SummaryMaxTokens:      cfg.LLM.SummaryMaxTokens,
		ExtractionTemperature: cfg.LLM.ExtractionTemperature,
		ExtractionMaxTokens:   cfg.LLM.ExtractionMaxTokens,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	patientRepo := repositories.NewPatientRepository(db)
	noteRepo := repositories.NewNoteRepository(db)

	processor := services.NewAudioProcessor(transcriber, llm, audioStore, logger)
	patientService := services.NewPatientService(patientRepo, logger)
	noteService := services.NewNoteService(noteRepo, patientRepo, processor, transcriber, llm, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, noteService, logger).RegisterRoutes(mux)
	handlers.NewPatientsHandler(patientService, noteService, logger).RegisterRoutes(mux)
	handlers.NewNotesHandler(noteService, audioStore, cfg.Upload.MaxBytes, logger).RegisterRoutes(mux)

	handler := middleware.RequestLogger(logger)(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting homescribe-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a production logger, or a human-readable development
// logger when running locally.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
