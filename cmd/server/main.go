package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/renthaven/listing-service/internal/adapter/messaging/nats"
	"github.com/renthaven/listing-service/internal/adapter/repository/cache"
	"github.com/renthaven/listing-service/internal/adapter/repository/mongodb"
	"github.com/renthaven/listing-service/internal/adapter/rest"
	"github.com/renthaven/listing-service/internal/adapter/storage/minio"
	"github.com/renthaven/listing-service/internal/config"
	"github.com/renthaven/listing-service/internal/listing/upload"
	"github.com/renthaven/listing-service/internal/listing/usecase"
	"github.com/renthaven/listing-service/internal/mailer"
	"github.com/renthaven/listing-service/internal/platform/logger"
	"github.com/renthaven/listing-service/internal/platform/tracer"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(ctx, "listing-service", cfg.OTLPEndpoint)
	if err != nil {
		log.Warn("Tracing disabled", "error", err.Error())
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				log.Warn("Tracer shutdown failed", "error", err.Error())
			}
		}()
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Error("Failed to connect to MongoDB", "error", err.Error())
		os.Exit(1)
	}
	defer mongoClient.Disconnect(context.Background())
	db := mongoClient.Database(cfg.MongoDatabase)

	listingRepo := mongodb.NewListingRepository(db)
	landlordDir := mongodb.NewLandlordDirectory(db)

	blobStore, err := minio.New(ctx, cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOBucket, cfg.MinIOUseSSL, log)
	if err != nil {
		log.Error("Failed to initialize blob storage", "error", err.Error())
		os.Exit(1)
	}

	// The cache and the event bus are conveniences; the service runs without
	// them if they are unreachable at startup.
	var listingCache usecase.ListingCache
	if c, err := cache.NewListingCache(cfg.RedisAddress); err != nil {
		log.Warn("Listing cache disabled", "error", err.Error())
	} else {
		listingCache = c
	}

	var publisher usecase.EventPublisher
	if p, err := nats.NewPublisher(cfg.NATSURL); err != nil {
		log.Warn("Event publishing disabled", "error", err.Error())
	} else {
		publisher = p
		defer p.Close()
	}

	var notifier usecase.Notifier
	if cfg.SMTPEmail != "" {
		notifier = mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
	}

	sequencer := upload.NewSequencer(blobStore, log)
	resolver := usecase.NewURLResolver(blobStore)
	submitUC := usecase.NewSubmitUsecase(listingRepo, sequencer, publisher, landlordDir, notifier,
		func() string { return uuid.New().String() }, log)
	readerUC := usecase.NewReaderUsecase(listingRepo, listingCache, resolver, log)

	handler := rest.NewHandler(submitUC, readerUC, log)
	router := rest.NewRouter(handler, cfg.JWTSecret, log)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Info("Starting HTTP server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", "error", err.Error())
	}
}
