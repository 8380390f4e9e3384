package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	guardhandler "mobiq/internal/guard/handler"
	"mobiq/internal/impersonation"
	impersonationhandler "mobiq/internal/impersonation/handler"
	"mobiq/internal/invite"
	invitehandler "mobiq/internal/invite/handler"
	"mobiq/internal/jwttoken"
	moduleshandler "mobiq/internal/modules/handler"
	modulesvc "mobiq/internal/modules/service"
	modulesstore "mobiq/internal/modules/store"
	navigationhandler "mobiq/internal/navigation/handler"
	"mobiq/internal/platform/config"
	"mobiq/internal/platform/database"
	"mobiq/internal/platform/health"
	kafkaproducer "mobiq/internal/platform/kafka/producer"
	"mobiq/internal/platform/logger"
	platformredis "mobiq/internal/platform/redis"
	"mobiq/internal/simulation"
	simulationhandler "mobiq/internal/simulation/handler"
	tenancyhandler "mobiq/internal/tenancy/handler"
	tenancymetrics "mobiq/internal/tenancy/metrics"
	"mobiq/internal/tenancy/preferences"
	"mobiq/internal/tenancy/scope"
	tenancysvc "mobiq/internal/tenancy/service"
	tenancystore "mobiq/internal/tenancy/store"
	httptransport "mobiq/internal/transport/http"
)

// main wires dependencies and keeps the server lifecycle small. Every
// external system is optional: without a DATABASE_URL, REDIS_URL, or
// KAFKA_BROKERS the process runs on in-memory stores, which is the local
// development mode.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	log.Info("initializing mobiq",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
	)

	// Database (optional).
	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Redis (optional).
	redisClient, err := platformredis.New(cfg.Redis())
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}

	// Kafka producer (optional).
	var emitter *kafkaproducer.Producer
	if cfg.KafkaBrokers != "" {
		emitter, err = kafkaproducer.New(kafkaproducer.Config{
			Brokers:         cfg.KafkaBrokers,
			Acks:            "all",
			Retries:         3,
			DeliveryTimeout: 10 * time.Second,
		}, log)
		if err != nil {
			log.Error("kafka init failed", "error", err)
			os.Exit(1)
		}
		defer emitter.Close()
	}

	// Stores: postgres when configured, in-memory otherwise.
	barrier := scope.NewBarrier()
	cache := scope.NewCache(barrier, cfg.CacheTTL)
	tenMetrics := tenancymetrics.New()

	var tenancyService *tenancysvc.Service
	var moduleService *modulesvc.Service
	var simStore simulation.Store
	var simAudit simulation.AuditStore
	var directory invite.Directory

	var prefStore preferences.Store
	if redisClient != nil {
		prefStore = preferences.NewRedis(redisClient)
	} else {
		prefStore = preferences.NewInMemory()
	}

	if pool != nil && pool.DB() != nil {
		db := pool.DB()
		tenancyService = tenancysvc.New(
			tenancystore.NewPostgresMemberships(db),
			tenancystore.NewPostgresTenants(db),
			prefStore,
			barrier,
			tenancysvc.WithMetrics(tenMetrics),
			tenancysvc.WithLogger(log),
		)
		moduleService = modulesvc.New(modulesstore.NewPostgres(db))
		simStore = simulation.NewPostgresStore(db)
		simAudit = simulation.NewPostgresAuditStore(db)
		directory = invite.NewPostgresDirectory(db)
	} else {
		log.Warn("no DATABASE_URL configured, using in-memory stores")
		tenancyService = tenancysvc.New(
			tenancystore.NewInMemoryMemberships(),
			tenancystore.NewInMemoryTenants(),
			prefStore,
			barrier,
			tenancysvc.WithMetrics(tenMetrics),
			tenancysvc.WithLogger(log),
		)
		moduleService = modulesvc.New(modulesstore.NewInMemory())
		simStore = simulation.NewInMemoryStore()
		simAudit = simulation.NewInMemoryAuditStore()
		directory = invite.NewInMemoryDirectory()
	}

	// Simulation audit trail publisher, async with kafka fan-out when
	// a producer is configured.
	publisherOpts := []simulation.PublisherOption{
		simulation.WithAsyncBuffer(256),
		simulation.WithPublisherLogger(log),
	}
	if emitter != nil {
		publisherOpts = append(publisherOpts, simulation.WithEmitter(emitter))
	}
	auditPublisher := simulation.NewPublisher(simAudit, publisherOpts...)
	defer auditPublisher.Close()

	simulationService := simulation.New(simStore, simAudit,
		simulation.WithPublisher(auditPublisher),
		simulation.WithCache(cache, barrier),
		simulation.WithLogger(log),
	)

	var inviteEmitter invite.EventEmitter
	if emitter != nil {
		inviteEmitter = emitter
	}
	inviteService := invite.New(directory, inviteEmitter, log)

	tokens := jwttoken.New(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	impersonationManager := impersonation.NewManager()

	healthHandler := health.New(cfg.Environment)
	if pool != nil && pool.DB() != nil {
		healthHandler.RegisterCheck("database", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(ctx)
		})
	}
	if redisClient != nil {
		healthHandler.RegisterCheck("redis", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Health(ctx)
		})
		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for range ticker.C {
				redisClient.RecordPoolStats()
			}
		}()
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Tenancy:       tenancyhandler.New(tenancyService, log),
		Guard:         guardhandler.New(tenancyService, moduleService, log),
		Modules:       moduleshandler.New(moduleService, log),
		Simulations:   simulationhandler.New(simulationService, tenancyService, log),
		Impersonation: impersonationhandler.New(impersonationManager, log),
		Navigation:    navigationhandler.New(),
		Invite:        invitehandler.New(inviteService, tokens, cfg.CORSOrigin, log),
		Health:        healthHandler,
		Validator:     tokens,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("starting http server", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
