package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/config"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/db"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/middleware"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/pipeline"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/predict"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/rates"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/repository"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/scorer"
	"github.com/PemaBP/Prediction-approbation-pret-bancaire/internal/stats"

	"github.com/rs/cors"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Reference data is loaded once and immutable for the process lifetime.
	rateTable, err := rates.Load(cfg.RatesPath)
	if err != nil {
		log.Fatalf("Failed to load interest rates: %v", err)
	}

	model, err := scorer.LoadModel(cfg.ModelPath)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn.Pool, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	predictionRepo := repository.NewPredictionLogRepository(conn.Pool)
	feedbackRepo := repository.NewFeedbackRepository(conn.Pool)

	var statsCache repository.StatsCache
	if cfg.RedisAddr != "" {
		statsCache = repository.NewRedisStatsCache(cfg.RedisAddr)
	}

	engineer := pipeline.NewEngineer(rateTable, cfg.ReferenceYear)
	batchPipeline := pipeline.New(engineer)
	predictService := predict.NewService(batchPipeline, scorer.New(model), predictionRepo)
	statsService := stats.NewService(predictionRepo, feedbackRepo, statsCache)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
	})

	predictHandler := predict.NewHTTPHandler(predictService)
	statsHandler := stats.NewHTTPHandler(statsService)

	mux := http.NewServeMux()
	mux.Handle("/", predictHandler)
	mux.Handle("/health", predictHandler)
	mux.Handle("/columns", predictHandler)
	mux.Handle("/csv-template", predictHandler)
	mux.Handle("/predict-one", predictHandler)
	mux.Handle("/predict-batch-json", predictHandler)
	mux.Handle("/predict-batch-file", predictHandler)
	mux.Handle("/stats", statsHandler)
	mux.Handle("/feedback", statsHandler)
	mux.Handle("/feedback-stats", statsHandler)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      middleware.LoggingMiddleware(corsHandler.Handler(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting loan approval API on %s (reference year %d, rate %.2f)",
			cfg.ServerAddr, cfg.ReferenceYear, engineer.Rate())

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
