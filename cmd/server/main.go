package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"parapet/internal/audit"
	httprouter "parapet/internal/http"
	permithandler "parapet/internal/permit/handler"
	permitservice "parapet/internal/permit/service"
	permitstore "parapet/internal/permit/store"
	"parapet/internal/platform/config"
	"parapet/internal/platform/httpserver"
	"parapet/internal/platform/logger"
	"parapet/internal/platform/metrics"
	"parapet/internal/platform/postgres"
	platformredis "parapet/internal/platform/redis"
	"parapet/internal/portfolio"
	propertyhandler "parapet/internal/property/handler"
	propertyservice "parapet/internal/property/service"
	propertystore "parapet/internal/property/store"
	"parapet/internal/summary"
	"parapet/internal/tax"
	"parapet/internal/vendor"
	"parapet/internal/violation"
	"parapet/internal/workorder"
)

// main wires stores, services, and transport, then runs the server until a
// shutdown signal. Business logic lives in the internal module packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx := context.Background()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if db == nil {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	} else if err := postgres.Migrate(ctx, db); err != nil {
		log.Error("schema migration failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	// Audit pipeline: postgres (or memory) store, optional Kafka fan-out.
	var auditStore audit.Store
	if db != nil {
		auditStore = audit.NewPostgres(db)
	} else {
		auditStore = audit.NewInMemoryStore()
	}
	auditOpts := []audit.Option{audit.WithAsyncBuffer(256), audit.WithLogger(log)}
	if len(cfg.KafkaBrokers) > 0 {
		sink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("kafka sink setup failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		auditOpts = append(auditOpts, audit.WithSink(sink))
	}
	auditor := audit.NewPublisher(auditStore, auditOpts...)
	defer auditor.Close()

	var (
		propertyStoreImpl  propertyservice.Store
		permitStoreImpl    permitservice.Store
		violationStoreImpl violation.Store
		workOrderStoreImpl workorder.Store
		vendorStoreImpl    vendor.Store
		portfolioStoreImpl portfolio.Store
		taxStoreImpl       tax.Store
	)
	if db != nil {
		propertyStoreImpl = propertystore.NewPostgres(db)
		permitStoreImpl = permitstore.NewPostgres(db)
		violationStoreImpl = violation.NewPostgresStore(db)
		workOrderStoreImpl = workorder.NewPostgresStore(db)
		vendorStoreImpl = vendor.NewPostgresStore(db)
		portfolioStoreImpl = portfolio.NewPostgresStore(db)
		taxStoreImpl = tax.NewPostgresStore(db)
	} else {
		propertyStoreImpl = propertystore.NewInMemory()
		permitStoreImpl = permitstore.NewInMemory()
		violationStoreImpl = violation.NewInMemoryStore()
		workOrderStoreImpl = workorder.NewInMemoryStore()
		vendorStoreImpl = vendor.NewInMemoryStore()
		portfolioStoreImpl = portfolio.NewInMemoryStore()
		taxStoreImpl = tax.NewInMemoryStore()
	}

	propertySvc := propertyservice.New(propertyStoreImpl, auditor, m)
	permitSvc := permitservice.New(permitStoreImpl, auditor, m)
	violationSvc := violation.NewService(violationStoreImpl, auditor, m)
	workOrderSvc := workorder.NewService(workOrderStoreImpl, auditor, m)
	vendorSvc := vendor.NewService(vendorStoreImpl, auditor, m)
	portfolioSvc := portfolio.NewService(portfolioStoreImpl, auditor, m)
	taxSvc := tax.NewService(taxStoreImpl, auditor, m)

	deps := httprouter.Deps{
		Logger:     log,
		Metrics:    m,
		AdminToken: cfg.AdminToken,
		DB:         db,
		Redis:      redisClient,
		Properties: propertyhandler.New(propertySvc, log),
		Permits:    permithandler.New(permitSvc, log),
		Violations: violation.NewHandler(violationSvc, log),
		WorkOrders: workorder.NewHandler(workOrderSvc, log),
		Vendors:    vendor.NewHandler(vendorSvc, log),
		Portfolios: portfolio.NewHandler(portfolioSvc, log),
		Taxes:      tax.NewHandler(taxSvc, log),
		Audit:      audit.NewHandler(auditStore, log),
	}

	if cfg.Summary.OpenAIKey != "" {
		provider, err := summary.NewOpenAIProvider(cfg.Summary.OpenAIKey, cfg.Summary.Model)
		if err != nil {
			log.Error("summary provider setup failed", "error", err)
			os.Exit(1)
		}
		var cache summary.Cache
		if redisClient != nil {
			cache = summary.NewRedisCache(redisClient)
		}
		summarySvc := summary.NewService(
			provider, cache, cfg.Summary.CacheTTL,
			propertySvc, violationSvc, permitSvc, taxSvc, workOrderSvc,
			auditor, m,
		)
		deps.Summaries = summary.NewHandler(summarySvc, log)
	} else {
		log.Warn("OPENAI_API_KEY not set, summary endpoint disabled")
	}

	srv := httpserver.New(cfg.Addr, httprouter.NewRouter(deps))

	log.Info("starting parapet", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}
