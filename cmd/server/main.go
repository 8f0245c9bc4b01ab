// Server entrypoint: wires configuration, infrastructure clients, the domain
// services, and the HTTP router. Business logic lives under internal/.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pessoas/internal/address"
	addresshandler "pessoas/internal/address/handler"
	addressstore "pessoas/internal/address/store"
	"pessoas/internal/audit"
	"pessoas/internal/contact"
	contacthandler "pessoas/internal/contact/handler"
	contactstore "pessoas/internal/contact/store"
	"pessoas/internal/dedup"
	dedupmetrics "pessoas/internal/dedup/metrics"
	deduptracer "pessoas/internal/dedup/tracer"
	"pessoas/internal/locality"
	localityhandler "pessoas/internal/locality/handler"
	localitystore "pessoas/internal/locality/store"
	personhandler "pessoas/internal/person/handler"
	personmetrics "pessoas/internal/person/metrics"
	personservice "pessoas/internal/person/service"
	personstore "pessoas/internal/person/store"
	"pessoas/internal/platform/config"
	"pessoas/internal/platform/database"
	"pessoas/internal/platform/httpserver"
	"pessoas/internal/platform/kafka"
	"pessoas/internal/platform/kafka/producer"
	"pessoas/internal/platform/logger"
	platformredis "pessoas/internal/platform/redis"
	"pessoas/pkg/platform/middleware/auth"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Infrastructure clients. Each is optional; absent ones degrade to
	// in-memory implementations so the server still runs locally.
	pool, err := database.New(cfg.Postgres)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Person persistence and transactional boundary.
	var (
		people   personstore.Store
		personTx personservice.PersonStoreTx
	)
	if pool != nil {
		people = personstore.NewPostgres(pool.DB())
		personTx = newPersonPostgresTx(pool.DB())
	} else {
		mem := personstore.NewMemory()
		people = mem
		personTx = personservice.NewMemoryTx(mem)
		log.Warn("postgres not configured, using in-memory person store")
	}

	// Audit trail. Kafka when configured, otherwise an in-memory sink.
	var sink audit.Sink
	if cfg.Kafka.Brokers != "" {
		if err := kafka.EnsureTopic(ctx, cfg.Kafka); err != nil {
			log.Error("kafka topic setup failed", "error", err)
			os.Exit(1)
		}
		kafkaProducer, err := producer.New(cfg.Kafka, log)
		if err != nil {
			log.Error("kafka producer init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaProducer.Close()
		sink = audit.NewKafkaSink(kafkaProducer, cfg.Kafka.Topic)
	} else {
		sink = audit.NewMemorySink()
		log.Warn("kafka not configured, audit events stay in memory")
	}
	auditor := audit.NewPublisher(sink, audit.WithLogger(log))
	defer auditor.Close()

	// Domain services.
	dedupSvc := dedup.New(people,
		dedup.WithLogger(log),
		dedup.WithMetrics(dedupmetrics.New()),
		dedup.WithTracer(deduptracer.NewOTel()),
		dedup.WithThreshold(cfg.Dedup.SimilarityThreshold),
		dedup.WithBirthDateWindow(cfg.Dedup.BirthDateWindowDays),
	)

	personSvc := personservice.New(people, personTx, dedupSvc,
		personservice.WithLogger(log),
		personservice.WithAuditPublisher(auditor),
		personservice.WithMetrics(personmetrics.New()),
	)

	var addresses addressstore.Store
	var contacts contactstore.Store
	var localities localitystore.Store
	if pool != nil {
		addresses = addressstore.NewPostgres(pool.DB())
		contacts = contactstore.NewPostgres(pool.DB())
		localities = localitystore.NewPostgres(pool.DB())
	} else {
		addresses = addressstore.NewMemory()
		contacts = contactstore.NewMemory()
		localities = localitystore.NewMemory()
	}

	if redisClient != nil {
		cached := localitystore.NewCached(localities, redisClient.Client,
			localitystore.WithCacheTTL(cfg.Redis.CacheTTL),
			localitystore.WithCacheLogger(log),
		)
		localities = cached

		syncWorker := locality.NewSyncWorker(cached, locality.WithSyncLogger(log))
		go func() {
			if err := syncWorker.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("locality sync worker stopped", "error", err)
			}
		}()
	}

	addressSvc := address.New(addresses, personSvc, address.WithLogger(log))
	contactSvc := contact.New(contacts, personSvc, contact.WithLogger(log))
	localitySvc := locality.New(localities, locality.WithLogger(log))

	// HTTP surface.
	jwtValidator := auth.NewHMACValidator(cfg.JWTSigningKey)

	router := chi.NewRouter()
	personhandler.New(personSvc, dedupSvc, log, jwtValidator, cfg.AdminKeyHash).Register(router)
	addresshandler.New(addressSvc, log, jwtValidator).Register(router)
	contacthandler.New(contactSvc, log, jwtValidator).Register(router)
	localityhandler.New(localitySvc, log, jwtValidator).Register(router)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", healthHandler(pool, redisClient))

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

func healthHandler(pool *database.Pool, redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if pool != nil {
			if err := pool.Health(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				http.Error(w, "cache unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}
}
