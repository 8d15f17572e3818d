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

	"github.com/fjod/go_storefront/internal/config"
	"github.com/fjod/go_storefront/internal/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	orders, err := newOrderCreator(cfg)
	if err != nil {
		log.Fatalf("Failed to create Razorpay client: %v", err)
	}

	payments, closePayments, err := openPayments(cfg, func(dsn string) (paymentsRepo, error) {
		return payment.NewRepository(dsn)
	})
	if err != nil {
		log.Fatalf("Failed to open payments table: %v", err)
	}
	defer closePayments()

	fn := payment.NewOrderFunction(orders, payments, cfg.RazorpayTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.FunctionPort,
		Handler:      fn.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RazorpayTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Order function starting on :%s", cfg.FunctionPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down order function...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Println("order function exited")
}

// newOrderCreator returns nil without credentials; the function then answers
// every request with the credentials error, like the hosted function.
func newOrderCreator(cfg *config.Config) (payment.OrderCreator, error) {
	if !cfg.RazorpayConfigured() {
		log.Printf("Razorpay credentials not configured")
		return nil, nil
	}
	client, err := payment.NewClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayTimeout)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type paymentsRepo interface {
	payment.PaymentUpdater
	RunMigrations(migrationsPath string) error
	Close() error
}

// openPayments opens the payments table only when PAYMENTS_DSN is set.
func openPayments(cfg *config.Config, open func(dsn string) (paymentsRepo, error)) (payment.PaymentUpdater, func(), error) {
	if !cfg.PaymentsTableConfigured() {
		log.Printf("PAYMENTS_DSN not set, payment rows are not stamped")
		return nil, func() {}, nil
	}

	repo, err := open(cfg.PaymentsDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := repo.RunMigrations(cfg.PaymentsMigrations); err != nil {
		repo.Close()
		return nil, nil, err
	}
	log.Printf("Payments table ready")
	return repo, func() { repo.Close() }, nil
}
