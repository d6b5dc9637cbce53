package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rmarques/quizdesk/internal/api"
	"github.com/rmarques/quizdesk/internal/config"
	"github.com/rmarques/quizdesk/internal/logger"
	"github.com/rmarques/quizdesk/internal/quiz"
	"github.com/rmarques/quizdesk/internal/services"
	"github.com/rmarques/quizdesk/internal/store"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("QuizDesk Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("specific_db_path=%s", cfg.SpecificDBPath)
	log.Debug("general_db_path=%s", cfg.GeneralDBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("default_question_count=%d", cfg.DefaultCount)
	log.Debug("specific_ratio=%v", cfg.SpecificRatio)

	reader := store.NewReader(cfg.SpecificDBPath, cfg.GeneralDBPath)

	// Probe both stores up front. An unreachable store is a notice, not a
	// startup failure: its pool is simply empty.
	probeCtx, probeCancel := context.WithTimeout(context.Background(), 10*time.Second)
	for _, name := range store.Names {
		if err := reader.Ping(probeCtx, name); err != nil {
			log.Warn("question store %s is not reachable: %v", name, err)
		} else {
			log.Info("question store %s ready", name)
		}
	}
	probeCancel()

	quizCfg := quiz.Config{
		SpecificRatio:      cfg.SpecificRatio,
		ExcellentThreshold: cfg.ExcellentThreshold,
		GoodThreshold:      cfg.GoodThreshold,
	}
	quizService := services.NewQuizService(reader, quizCfg, cfg.DefaultCount)

	srv := &api.Server{
		QuizService: quizService,
		Reader:      reader,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("QuizDesk Server Stopped")
	log.Info("===========================================")
}
