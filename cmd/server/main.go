package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/example/wismo-service/internal/adapter/cache"
	"github.com/example/wismo-service/internal/adapter/httpapi"
	"github.com/example/wismo-service/internal/adapter/natsstan"
	"github.com/example/wismo-service/internal/adapter/repo"
	"github.com/example/wismo-service/internal/config"
	"github.com/example/wismo-service/internal/usecase"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("warehouse connect")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.WithError(err).Fatal("warehouse ping")
	}

	warehouse := repo.NewWarehouseRepo(pool)
	orderCache := cache.NewTTLOrderCache(cfg.CacheTTL)

	ucResolve := usecase.ResolveOrderTree{Repo: warehouse, Cache: orderCache}
	ucEmail := usecase.ComposeOrderEmail{Resolve: ucResolve}
	ucProducts := usecase.LookupProducts{Repo: warehouse}
	ucHealth := usecase.CheckHealth{Repo: warehouse}
	ucEvict := usecase.EvictOrder{Cache: orderCache}

	if cfg.NATSURL != "" {
		sub := &natsstan.Subscriber{
			ClusterID: cfg.StanClusterID,
			ClientID:  cfg.StanClientID,
			URL:       cfg.NATSURL,
			Subject:   cfg.StanSubject,
			Durable:   cfg.StanDurable,
		}
		go func() {
			err := sub.Subscribe(ctx, func(_ context.Context, orderNumber string) error {
				ucEvict.Execute(orderNumber)
				log.WithField("order", orderNumber).Info("evicted after change event")
				return nil
			})
			if err != nil {
				log.WithError(err).Error("change-event subscribe")
			}
		}()
	}

	go sweepLoop(ctx, orderCache, cfg.CacheSweepInterval)

	api := httpapi.NewServer(ucResolve, ucEmail, ucProducts, ucHealth, orderCache)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: api.Router}
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("http listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}

// sweepLoop periodically removes expired cache entries. Expiry is already
// checked lazily on access; the sweep just keeps long-idle keys from piling
// up.
func sweepLoop(ctx context.Context, orderCache *cache.TTLOrderCache, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := orderCache.CleanupExpired(); removed > 0 {
				log.WithField("removed", removed).Debug("cache sweep")
			}
		}
	}
}
