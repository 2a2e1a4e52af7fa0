package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flicky/go-storefront/internal/service"
)

const (
	landingCacheKey = "landing:products"
	landingCacheTTL = 5 * time.Minute
	productCacheTTL = 60 * time.Second
)

// CatalogWarmer periodically fetches the landing-page product slice and
// primes the Redis cache so first paint does not wait on the backend. With
// no Redis configured it still runs, acting as a reachability monitor.
type CatalogWarmer struct {
	catalog     *service.CatalogService
	redisClient *redis.Client
	log         *slog.Logger
	pageSize    int
	interval    time.Duration
	done        chan struct{}
}

func NewCatalogWarmer(
	catalog *service.CatalogService,
	redisClient *redis.Client,
	log *slog.Logger,
	pageSize int,
	interval time.Duration,
) *CatalogWarmer {
	return &CatalogWarmer{
		catalog:     catalog,
		redisClient: redisClient,
		log:         log,
		pageSize:    pageSize,
		interval:    interval,
		done:        make(chan struct{}),
	}
}

func (w *CatalogWarmer) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.warm(ctx)
		for {
			select {
			case <-ticker.C:
				w.warm(ctx)
			case <-w.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	w.log.Info("catalog warmer started", "interval", w.interval)
}

func (w *CatalogWarmer) Stop() { close(w.done) }

func (w *CatalogWarmer) warm(ctx context.Context) {
	result := w.catalog.List(ctx, 1, w.pageSize)
	if !result.Success {
		w.log.Warn("catalog warm failed", "message", result.Message)
		return
	}
	w.log.Debug("catalog warmed", "products", len(result.Data))

	if w.redisClient == nil {
		return
	}
	if data, err := json.Marshal(result.Data); err == nil {
		w.redisClient.Set(ctx, landingCacheKey, data, landingCacheTTL)
	}
	for _, product := range result.Data {
		if data, err := json.Marshal(product); err == nil {
			w.redisClient.Set(ctx, "product:"+strconv.FormatInt(product.ID, 10), data, productCacheTTL)
		}
	}
}
