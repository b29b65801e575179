package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/woped/rag/internal/config"
	dbredis "github.com/woped/rag/internal/db/redis"
	"github.com/woped/rag/internal/diagram"
	logpkg "github.com/woped/rag/internal/logger"
	"github.com/woped/rag/internal/metrics"
	documentrepo "github.com/woped/rag/internal/repository/document"
	searchrepo "github.com/woped/rag/internal/repository/search"
	chitransport "github.com/woped/rag/internal/transport/chi"
	openaiemb "github.com/woped/rag/internal/transport/openai"
	pdftransport "github.com/woped/rag/internal/transport/pdf"
	documentuc "github.com/woped/rag/internal/usecase/document"
	extractionuc "github.com/woped/rag/internal/usecase/extraction"
	healthuc "github.com/woped/rag/internal/usecase/health"
	ingestuc "github.com/woped/rag/internal/usecase/ingest"
	raguc "github.com/woped/rag/internal/usecase/rag"
	searchuc "github.com/woped/rag/internal/usecase/search"
	"github.com/woped/rag/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting RAG API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("diagram_preprocessing", cfg.Preprocessing.Enabled),
	)

	store, err := dbredis.NewStore(dbredis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register non-HTTP metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterExtractionMetrics()

	embedder := openaiemb.NewEmbedder(&openaiemb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	keyPrefix := cfg.Storage.KeyPrefix
	docRepo := documentrepo.New(store, keyPrefix)
	searchRepo := searchrepo.New(store, keyPrefix)

	hnsw := documentrepo.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	}
	if err := documentrepo.EnsureIndex(ctx, store, keyPrefix, cfg.Embedding.Dimensions, hnsw); err != nil {
		logger.Fatal("Failed to ensure document index", zap.Error(err))
	}

	docSvc := documentuc.New(docRepo, embedder, logger)
	searchSvc := searchuc.New(searchRepo, embedder, cfg.Retrieval.TopK, cfg.Retrieval.MinScore, logger)
	extractSvc := extractionuc.New(diagram.NewFilter(nil), logger)
	ragSvc := raguc.New(extractSvc, searchSvc, raguc.Config{
		PreprocessingEnabled: cfg.Preprocessing.Enabled,
		Instruction:          cfg.Rag.Instruction,
	}, logger)

	loader := pdftransport.NewLoader(logger)
	chunker := ingestuc.NewSentenceChunker(cfg.Ingest.SentencesPerChunk, cfg.Ingest.OverlapSentences)
	ingestSvc := ingestuc.New(loader, docSvc, chunker, logger)

	healthSvc := healthuc.New(store, embedder)

	server := chitransport.NewServer(ragSvc, docSvc, ingestSvc, healthSvc, cfg.Auth.APIKeys, logger)

	// Background startup ingestion of the configured PDF directory
	if cfg.Ingest.PDFDir != "" {
		go func() {
			if _, err := ingestSvc.IndexDirectory(ctx, cfg.Ingest.PDFDir); err != nil {
				logger.Error("Startup PDF ingestion failed", zap.Error(err))
			}
		}()
	}

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
