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

	"github.com/OKANLA95/Keziah-Shop/internal/config"
	"github.com/OKANLA95/Keziah-Shop/internal/infra"
	"github.com/OKANLA95/Keziah-Shop/internal/repository"
	"github.com/OKANLA95/Keziah-Shop/internal/router"
	"github.com/OKANLA95/Keziah-Shop/internal/service"
	"github.com/OKANLA95/Keziah-Shop/internal/watch"
	"github.com/OKANLA95/Keziah-Shop/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	store, err := infra.NewFileStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init file store")
	}
	mailer := infra.NewMailer(cfg)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// Change notifications span instances via Redis pub/sub.
	broker := watch.NewBroker(watch.NewRedisNotifier(rdb))

	// Services
	dispatcher := worker.NewDispatcher(rdb)
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo, movementRepo, broker)
	saleSvc := service.NewSaleService(saleRepo, productRepo, movementRepo, broker)
	invoiceSvc := service.NewInvoiceService(saleRepo, productRepo, movementRepo, userRepo, dispatcher, broker)
	reportSvc := service.NewReportService(saleRepo, productRepo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Async workers: invoice PDF rendering, then email delivery.
	handlers := &worker.Handlers{
		InvoicePDF: worker.NewInvoicePDFWorker(invoiceSvc.GetInvoice, dispatcher, cfg.PDFStorageDir),
		Email:      worker.NewEmailWorker(mailer),
	}
	worker.StartPool(ctx, rdb, dispatcher, handlers, cfg.WorkerPoolSize)

	engine := router.New(router.Deps{
		Cfg:      cfg,
		DB:       db,
		Redis:    rdb,
		Store:    store,
		Broker:   broker,
		Auth:     authSvc,
		Products: productSvc,
		Sales:    saleSvc,
		Invoices: invoiceSvc,
		Reports:  reportSvc,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // SSE and PDF exports can be slow
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close failed")
	}
	log.Info().Msg("server stopped")
}
