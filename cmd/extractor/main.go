// Package main запускает выгрузку плейлиста Spotify в объектное хранилище.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"spotifyetl/internal/app"
	"spotifyetl/internal/config"
	"spotifyetl/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	once := flag.Bool("once", false, "run a single extraction and exit")
	flag.Parse()

	// Инициализация логгера
	log := logger.New()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Создание контекста
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Обработка сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("Shutdown signal received")
		cancel()
	}()

	// Создание приложения через фабрику
	extractor, err := app.NewExtractorWithFactory(cfg, log)
	if err != nil {
		log.Fatal("Failed to create extractor", zap.Error(err))
	}

	if *once {
		// Одна выгрузка без планировщика
		run, err := extractor.RunOnce(ctx)
		extractor.Stop()
		if err != nil {
			log.Error("Extraction failed", zap.Error(err))
			os.Exit(1)
		}
		log.Info("Extraction completed",
			zap.String("object_key", run.ObjectKey),
			zap.Int64("payload_bytes", run.PayloadBytes))
		return
	}

	// Режим демона с планировщиком
	if err := extractor.Start(ctx); err != nil {
		log.Error("Extractor stopped with error", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Extractor stopped successfully")
}
