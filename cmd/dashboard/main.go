// cmd/dashboard/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"dashboard-core/internal/api"
	"dashboard-core/internal/common/aws"
	"dashboard-core/internal/common/config"
	stderrors "dashboard-core/internal/common/errors"
	"dashboard-core/internal/common/logger"
	"dashboard-core/internal/common/observability"
	"dashboard-core/internal/models"
	"dashboard-core/internal/notify"
	"dashboard-core/internal/store"
)

// retryWithBackoff attempts an operation with exponential backoff.
// Non-retryable failures (e.g. an invalid payload) abort immediately.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		var stdErr *stderrors.StandardError
		if errors.As(err, &stdErr) && !stderrors.IsRetryable(stdErr) {
			return fmt.Errorf("%s failed with non-retryable error: %w", operationName, err)
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting dashboard core...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("dashboard-core")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Optional snapshot cache ---
	var cache *api.SnapshotCache
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			zapLog.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
		} else {
			cache = api.NewSnapshotCache(redisClient, cfg.Redis.GetTTL(), log)
			zapLog.Info("Redis snapshot cache connected")
		}
	}

	// --- Remote API clients ---
	client := api.NewClient(cfg.API, log)
	taskAPI := api.NewTaskService(client, cache)
	leadAPI := api.NewLeadService(client, cache)
	txAPI := api.NewTransactionService(client, cache)

	// --- Notification surfaces ---
	bus := notify.NewBus(128, log)

	var watcher *notify.BudgetWatcher
	if cfg.Notifications.Enabled {
		var sender notify.AlertSender
		if cfg.Notifications.SNSTopicARN != "" {
			snsClient, err := aws.NewSNSClient(ctx, cfg.Notifications.AWSRegion)
			if err != nil {
				zapLog.Warn("sns client init failed, budget alerts disabled", zap.Error(err))
			} else {
				sender = notify.NewSNSAlertSender(snsClient, cfg.Notifications)
			}
		} else if cfg.Notifications.EmailTo != "" {
			sesClient, err := aws.NewSESClient(ctx, cfg.Notifications.AWSRegion)
			if err != nil {
				zapLog.Warn("ses client init failed, budget alerts disabled", zap.Error(err))
			} else {
				sender = notify.NewSESAlertSender(sesClient, cfg.Notifications)
			}
		}
		if sender != nil {
			if len(cfg.Notifications.Budgets) == 0 {
				zapLog.Warn("notifications enabled but no budgets configured, budget alerts disabled")
			} else {
				watcher = notify.NewBudgetWatcher(cfg.Notifications.Budgets, sender, log)
			}
		}
	}

	var onTransactionsChanged func([]models.Transaction)
	if watcher != nil {
		onTransactionsChanged = func(transactions []models.Transaction) {
			watcher.Check(ctx, transactions)
		}
	}

	st := store.New(store.Options{
		Logger:                log,
		Notifier:              bus,
		TaskAPI:               taskAPI,
		LeadAPI:               leadAPI,
		TransactionAPI:        txAPI,
		OnTransactionsChanged: onTransactionsChanged,
	})

	// --- Metrics and pprof endpoint ---
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/debug/pprof/", http.DefaultServeMux)
		if err := http.ListenAndServe(":9090", mux); err != nil {
			zapLog.Error("metrics server stopped", zap.Error(err))
		}
	}()

	// --- Drain toast events into the log ---
	go func() {
		for ev := range bus.Events() {
			zapLog.Info("toast", zap.String("level", string(ev.Level)), zap.String("message", ev.Message))
		}
	}()

	// --- Initial loads, each independent ---
	for name, fetch := range map[string]func(context.Context) error{
		"tasks":        st.Tasks.Fetch,
		"leads":        st.Leads.Fetch,
		"transactions": st.Transactions.Fetch,
	} {
		name, fetch := name, fetch
		go func() {
			start := time.Now()
			err := retryWithBackoff(func() error {
				return fetch(ctx)
			}, 5, 2*time.Second, zapLog, fmt.Sprintf("initial %s fetch", name))
			if err != nil {
				obs.RecordFetch(ctx, name, "error", time.Since(start))
				zapLog.Error("initial fetch gave up", zap.String("entity", name), zap.Error(err))
				return
			}
			obs.RecordFetch(ctx, name, "ok", time.Since(start))
		}()
	}

	zapLog.Info("Dashboard core running",
		zap.String("apiBaseURL", cfg.API.BaseURL),
		zap.String("environment", cfg.App.Environment),
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	zapLog.Info("Shutting down...")
}
