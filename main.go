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

	"github.com/joho/godotenv"

	"healthdiary/internal/config"
	"healthdiary/internal/database"
	"healthdiary/internal/jobs"
	"healthdiary/internal/logger"
	"healthdiary/internal/repository"
	"healthdiary/internal/server"
	"healthdiary/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log := logger.GetLogger()

	db, err := database.NewPostgresDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	log.Info("database connected", "host", cfg.DB.Host, "db", cfg.DB.DBName)

	var tracker jobs.Tracker
	if cfg.Redis.Enabled {
		redisTracker, err := jobs.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer redisTracker.Close()
		tracker = redisTracker
		log.Info("job tracking backed by redis", "host", cfg.Redis.Host)
	} else {
		tracker = jobs.NewManager()
		log.Info("job tracking in memory")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ai, err := services.NewAIService(ctx, cfg.AI)
	if err != nil {
		return fmt.Errorf("init ai service: %w", err)
	}

	dayRepo := repository.NewDayRepository(db)
	mealRepo := repository.NewMealRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	waterRepo := repository.NewWaterRepository(db)
	sleepRepo := repository.NewSleepRepository(db)
	moodRepo := repository.NewMoodRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	recognitionSvc := services.NewRecognitionService(
		ai, mealRepo, tracker, log,
		cfg.Recognition.WorkerTimeout, cfg.Server.UploadsDir,
	)

	router := server.NewRouter(
		server.NewDayHandler(dayRepo),
		server.NewRecordHandler(mealRepo, exerciseRepo, waterRepo, sleepRepo, moodRepo, noteRepo),
		server.NewPhotoHandler(recognitionSvc),
		cfg.Server.AllowOrigins,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
