// cmd/engine-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"livestock-engine/internal/catalog"
	"livestock-engine/internal/common/config"
	"livestock-engine/internal/common/database"
	"livestock-engine/internal/common/logger"
	"livestock-engine/internal/delivery"
	"livestock-engine/internal/engine/feedconversion"
	"livestock-engine/internal/engine/visual"
	"livestock-engine/internal/export"
	"livestock-engine/internal/guidance"
	"livestock-engine/internal/models"
	"livestock-engine/internal/orchestrator"
	"livestock-engine/internal/scheduler"
	"livestock-engine/internal/store"
	"livestock-engine/internal/workflow"
	"livestock-engine/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting engine manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Adapters ---
	obsStore := store.NewRedisStore(redisClient.Client)
	feedCatalog := catalog.NewStore(pg.DB, redisClient.Client, log)
	guidanceClient := guidance.NewClient(cfg.Guidance)
	exporter := export.NewElasticsearchExporter(esClient.Client, cfg.Database.Elasticsearch.Index, log)

	var channels []delivery.Channel
	if cfg.Notifications.Email.Enabled {
		ses, err := delivery.NewSESDeliverer(ctx, cfg.Notifications.AWS.Region, cfg.Notifications.Email.FromEmail)
		if err != nil {
			zapLog.Fatal("ses deliverer failed", zap.Error(err))
		}
		channels = append(channels, ses)
	}
	if cfg.Notifications.SMS.Enabled {
		sns, err := delivery.NewSNSDeliverer(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns deliverer failed", zap.Error(err))
		}
		channels = append(channels, sns)
	}
	var deliverer delivery.Deliverer
	var notifier delivery.Notifier
	if len(channels) > 0 {
		fanout := delivery.NewFanout(channels...)
		deliverer = fanout
		notifier = fanout
	} else {
		noop := delivery.NewNoOp(log)
		deliverer = noop
		notifier = noop
	}

	followUps := scheduler.NewCronScheduler(log)
	followUps.Start()
	defer followUps.Stop()

	// --- Engines ---
	fcrEngine := feedconversion.NewEngine(feedconversion.LoadConfig(), feedCatalog, obsStore, log)
	visualEngine := visual.NewEngine(visual.LoadConfig(), obsStore, log)

	// --- Workflow engine ---
	wfConfig := workflow.LoadConfig()
	wfConfig.HistoryLimit = cfg.Workflow.HistoryLimit
	wfConfig.ActionTimeout = config.GetDuration(cfg.Workflow.ActionTimeout)
	wfConfig.FollowUpDays = cfg.Workflow.FollowUpDays
	wfConfig.ResearchFreshnessDays = cfg.Research.FreshnessDays
	wfConfig.AnonymizeSalt = cfg.Research.AnonymizeSalt

	workflows := workflow.DefaultWorkflows()
	if cfg.Workflow.RegistryPath != "" {
		reg, err := registry.LoadRegistry(cfg.Workflow.RegistryPath)
		if err != nil {
			zapLog.Fatal("workflow registry load failed", zap.Error(err))
		}
		workflows = reg.Merge(workflows)
		zapLog.Info("workflow registry merged", zap.String("path", cfg.Workflow.RegistryPath))
	}

	interventions := workflow.NewInterventionProcessor(wfConfig, guidanceClient, deliverer, followUps, log)
	executor := workflow.NewExecutor(obsStore, fcrEngine, visualEngine, notifier, interventions, workflow.NewRestyCaller(), log)
	wfEngine := workflow.NewEngine(wfConfig, workflows, executor, log)

	research := workflow.NewResearchProcessor(wfConfig, exporter, log)

	// --- Orchestration service ---
	service := orchestrator.New(
		orchestrator.LoadConfig(),
		obsStore,
		obsStore,
		fcrEngine,
		visualEngine,
		wfEngine,
		log,
	)

	zapLog.Info("All engines initialized",
		zap.Strings("workflows", wfEngine.Workflows()),
	)

	// --- API, Health & Metrics Server ---
	http.HandleFunc("POST /api/updates", func(w http.ResponseWriter, r *http.Request) {
		var update orchestrator.AnimalUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		profile, err := service.ProcessAnimalDataUpdate(r.Context(), update)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(profile)
	})
	http.HandleFunc("GET /api/dashboard/{userID}", func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := service.GeneratePersonalizedDashboard(r.Context(), r.PathValue("userID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dashboard)
	})
	http.HandleFunc("GET /api/profile/{animalID}", func(w http.ResponseWriter, r *http.Request) {
		profile, err := service.Profile(r.Context(), r.PathValue("animalID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(profile)
	})
	http.HandleFunc("GET /api/report/{animalID}", func(w http.ResponseWriter, r *http.Request) {
		animal, err := obsStore.GetAnimal(r.Context(), r.PathValue("animalID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		report, err := visualEngine.GenerateVisualFeedReport(r.Context(), animal)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(report)
	})
	http.HandleFunc("GET /api/feed-analysis/{animalID}/{feedID}", func(w http.ResponseWriter, r *http.Request) {
		analysis, err := fcrEngine.AnalyzeFeedPerformance(r.Context(), r.PathValue("animalID"), r.PathValue("feedID"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(analysis)
	})
	http.HandleFunc("POST /api/research/{dataType}", func(w http.ResponseWriter, r *http.Request) {
		var records []models.ResearchRecord
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result, err := research.ProcessResearchDataWorkflow(r.Context(), r.PathValue("dataType"), records)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	})
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	http.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: cfg.App.MetricsAddr}
	go func() {
		zapLog.Info("API server listening on " + cfg.App.MetricsAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping engines...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("API server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Engine manager stopped gracefully")
}
