package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher reloads course content from its source.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CatalogRefresher periodically reloads the catalog and all courses into the cache.
type CatalogRefresher struct {
	refresher Refresher
	spec      string
	logger    *zap.Logger
}

// NewCatalogRefresher creates a refresher running on the given cron spec.
func NewCatalogRefresher(refresher Refresher, spec string, logger *zap.Logger) *CatalogRefresher {
	return &CatalogRefresher{
		refresher: refresher,
		spec:      spec,
		logger:    logger,
	}
}

// Start warms the cache once and then refreshes on schedule until ctx is done.
func (r *CatalogRefresher) Start(ctx context.Context) error {
	r.logger.Info("catalog refresher started", zap.String("spec", r.spec))

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(r.spec, func() {
		r.logger.Info("cron triggered: refreshing courses")
		r.refresh(ctx)
	})
	if err != nil {
		return err
	}

	r.refresh(ctx)

	c.Start()

	<-ctx.Done()

	<-c.Stop().Done()
	r.logger.Info("catalog refresher stopped")

	return nil
}

func (r *CatalogRefresher) refresh(ctx context.Context) {
	if err := r.refresher.Refresh(ctx); err != nil {
		r.logger.Error("failed to refresh courses", zap.Error(err))
	}
}
