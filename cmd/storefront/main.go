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
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	c "github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/catalog"
	"github.com/fjod/go_storefront/internal/checkout"
	"github.com/fjod/go_storefront/internal/config"
	h "github.com/fjod/go_storefront/internal/http"
	"github.com/fjod/go_storefront/internal/metrics"
	"github.com/fjod/go_storefront/internal/payment"
	"github.com/fjod/go_storefront/internal/recorder"
	"github.com/fjod/go_storefront/internal/service"
)

const sweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Catalog
	repo, err := catalog.NewRepository(cfg.CatalogDriver, cfg.CatalogDSN)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(cfg.CatalogMigrations); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}
	log.Printf("Catalog migrations applied (%s)", cfg.CatalogDriver)

	store := catalog.NewStore(repo)
	// a failed first load is served as 503 until POST /products/reload
	m.CatalogLoaded(store.Load(ctx))

	// Sessions
	var sessions c.SessionCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal("Redis connection failed:", err)
		}
		log.Printf("Redis ping succeeded")
		sessions = c.NewRedisCache(redisClient, cfg.SessionTTL)
	} else {
		memory := c.NewMemoryCache(cfg.SessionTTL)
		go memory.RunSweeper(ctx, sweepInterval)
		log.Printf("REDIS_ADDR not set, keeping sessions in memory")
		sessions = memory
	}

	// Payments
	var gateway checkout.Gateway
	client, err := payment.NewClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayTimeout)
	switch {
	case errors.Is(err, payment.ErrCredentialsMissing):
		log.Printf("Razorpay credentials not configured, using sandbox gateway")
		gateway = payment.SandboxGateway{}
	case err != nil:
		log.Fatalf("Failed to create Razorpay client: %v", err)
	default:
		gateway = payment.NewWidgetGateway(client, client.KeyID())
	}

	// Order recorder
	var rec recorder.Recorder = recorder.Noop{}
	switch {
	case cfg.OrderWebhookURL != "":
		rec = recorder.NewWebhookRecorder(cfg.OrderWebhookURL, cfg.RecordTimeout)
		log.Printf("Recording orders to webhook")
	case len(cfg.KafkaBrokers) > 0:
		kafkaRec := recorder.NewKafkaRecorder(cfg.OrderTopic, cfg.KafkaBrokers...)
		defer kafkaRec.Close()
		rec = kafkaRec
		log.Printf("Recording orders to kafka topic %s", cfg.OrderTopic)
	default:
		log.Printf("No order recorder configured, orders are only logged")
	}

	storefront := service.NewStorefront(store, sessions, gateway, rec, m, service.Options{
		Merchant:      cfg.MerchantName,
		RecordTimeout: cfg.RecordTimeout,
	})

	router := h.NewRouter(h.Handlers{
		Products: h.NewProductHandler(store, m, cfg.RequestTimeout),
		Cart:     h.NewCartHandler(storefront, cfg.RequestTimeout),
		Checkout: h.NewCheckoutHandler(storefront, cfg.RequestTimeout),
	}, h.RouterConfig{
		RequestTimeout:  cfg.RequestTimeout,
		Metrics:         m,
		Gatherer:        reg,
		CheckoutLimiter: h.NewSessionLimiter(rate.Limit(cfg.CheckoutRateLimit), cfg.CheckoutRateBurst, cfg.SessionTTL),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	cancel()

	// pending order records finish before the recorder is closed
	storefront.Wait()
	log.Println("server exited")
}
