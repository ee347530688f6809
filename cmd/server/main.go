package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/oakhaven/casework/internal/classifier"
	"github.com/oakhaven/casework/internal/report"
	"github.com/oakhaven/casework/internal/server"
	"github.com/oakhaven/casework/internal/storage"
	"github.com/oakhaven/casework/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// The OpenAI client is optional; without it every path degrades to the
	// deterministic keyword and template fallbacks.
	var ai *classifier.OpenAIClient
	if cfg.OpenAI.Enabled && cfg.OpenAI.APIKey != "" {
		ai = classifier.NewOpenAIClient(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	} else {
		logger.Info("OpenAI disabled, using keyword classification and template reports")
	}

	var classification classifier.ClassificationProvider
	var generation classifier.GenerationProvider
	if ai != nil {
		classification = ai
		generation = ai
	}

	notes := classifier.NewNoteClassifier(classification, cfg.Classifier.MinChars, cfg.Classifier.MinConfidence, logger)
	documents := classifier.NewDocumentClassifier(classification, cfg.Classifier.MinChars, cfg.Classifier.MinConfidence, logger)
	extractor := classifier.NewExtractor(classification, cfg.Classifier.MinConfidence, cfg.Classifier.MinFragmentLength, logger)
	aggregator := report.NewAggregator(store)
	synthesizer := report.NewSynthesizer(generation, cfg.Report.NoteExcerptLimit, logger)

	srv := server.New(store, notes, documents, extractor, aggregator, synthesizer, logger)
	httpServer := server.NewHTTPServer(
		fmt.Sprintf(":%d", cfg.Server.Port),
		srv.Routes(),
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
		time.Duration(cfg.Server.WriteTimeoutSeconds)*time.Second,
	)

	go func() {
		logger.Info("Starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}
