package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alterach/pos-app/internal/catalog"
	"github.com/alterach/pos-app/internal/checkout"
	"github.com/alterach/pos-app/internal/customer"
	"github.com/alterach/pos-app/internal/db"
	"github.com/alterach/pos-app/internal/events"
	httpapi "github.com/alterach/pos-app/internal/http"
	"github.com/alterach/pos-app/internal/metrics"
	"github.com/alterach/pos-app/internal/payment"
	"github.com/alterach/pos-app/internal/receipt"
	"github.com/alterach/pos-app/internal/settings"
	"github.com/alterach/pos-app/internal/snapshot"
	"github.com/alterach/pos-app/internal/transaction"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	conn := db.MustOpen(cfg.DatabaseDSN)
	defer conn.Close()

	catalogRepo := catalog.NewPostgresRepository(pool)
	txnRepo := transaction.NewRepository(conn)
	customerRepo := customer.NewRepository(conn)
	settingsRepo := settings.NewRepository(conn)
	snapshots := snapshot.NewPostgresStore(conn)

	// --- AMQP ---
	var opts []checkout.Option
	if cfg.RabbitURL != "" {
		publisher, closeAMQP, err := events.Connect(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("amqp connect: %v", err)
		}
		defer closeAMQP()
		opts = append(opts, checkout.WithPublisher(publisher))
	} else {
		logger.Printf("RABBITMQ_URL not set, events disabled")
		opts = append(opts, checkout.WithPublisher(events.NopPublisher{}))
	}

	if cfg.PrintReceipts {
		opts = append(opts, checkout.WithReceiptSink(receipt.NewPrinter(os.Stdout)))
	}

	svc := checkout.NewService(catalogRepo, txnRepo, snapshots, settingsRepo, logger, opts...)
	svc.Restore(ctx)

	// --- payments ---
	var provider payment.Provider
	if cfg.PaymentSecretKey != "" {
		client, err := payment.NewClient(cfg.PaymentBaseURL, cfg.PaymentSecretKey, nil)
		if err != nil {
			logger.Fatalf("payment client: %v", err)
		}
		provider = client
	} else {
		logger.Printf("PAYMENT_SECRET_KEY not set, hosted invoices disabled")
	}

	// --- HTTP ---
	m := metrics.NewPOSMetrics(prometheus.DefaultRegisterer)
	h := httpapi.NewHandler(svc, catalogRepo, customerRepo, settingsRepo, provider, m, logger)
	r := httpapi.NewRouter(h)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = httpServer.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}

type config struct {
	HTTPAddr         string
	DatabaseDSN      string
	RunMigrations    bool
	RabbitURL        string
	PaymentBaseURL   string
	PaymentSecretKey string
	PrintReceipts    bool
}

func loadConfig() config {
	return config{
		HTTPAddr:         env("HTTP_ADDR", ":8080"),
		DatabaseDSN:      db.GetDSN(),
		RunMigrations:    envBool("RUN_MIGRATIONS", true),
		RabbitURL:        env("RABBITMQ_URL", ""),
		PaymentBaseURL:   env("PAYMENT_BASE_URL", "https://api.xendit.co"),
		PaymentSecretKey: env("PAYMENT_SECRET_KEY", ""),
		PrintReceipts:    envBool("PRINT_RECEIPTS", true),
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch v {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return fallback
	}
}
