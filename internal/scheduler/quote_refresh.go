package scheduler

import (
	"context"
	"time"

	"github.com/twatanabe/Asset-Overview-Backend/internal/service"
)

// QuoteRefreshJob periodically refetches quotes for all known stocks and FX
// pairs and, on success, rebuilds the asset snapshot so overview queries see
// the new prices.
type QuoteRefreshJob struct {
	quoteService *service.QuoteService
	assetService *service.AssetService
	timeout      time.Duration
}

// NewQuoteRefreshJob creates the job with the given per-run timeout.
func NewQuoteRefreshJob(quoteService *service.QuoteService, assetService *service.AssetService, timeout time.Duration) *QuoteRefreshJob {
	return &QuoteRefreshJob{
		quoteService: quoteService,
		assetService: assetService,
		timeout:      timeout,
	}
}

// Name implements Job.
func (j *QuoteRefreshJob) Name() string {
	return "quote-refresh"
}

// Run implements Job.
func (j *QuoteRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	if _, err := j.quoteService.RefreshAll(ctx); err != nil {
		return err
	}

	return j.assetService.Refresh(ctx)
}
