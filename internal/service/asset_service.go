package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/twatanabe/Asset-Overview-Backend/internal/apperrors"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// AssetService owns the current asset snapshot and answers overview and
// summary queries against it. The snapshot is swapped atomically by Refresh;
// concurrent queries read whichever snapshot was current when they started,
// so a long-running query never observes a half-built view.
type AssetService struct {
	loader       *AssetLoader
	mainCurrency string
	loadTimeout  time.Duration

	mu       sync.RWMutex
	snapshot *AssetSnapshot
}

// NewAssetService creates a new AssetService. mainCurrency is the default
// reporting currency for queries that do not specify one; loadTimeout bounds
// one full refresh.
func NewAssetService(loader *AssetLoader, mainCurrency string, loadTimeout time.Duration) *AssetService {
	return &AssetService{
		loader:       loader,
		mainCurrency: mainCurrency,
		loadTimeout:  loadTimeout,
	}
}

// Refresh loads all four sources and publishes the resulting snapshot.
// On failure the previous snapshot (if any) stays current; a report must
// never be served from a partially loaded state.
func (s *AssetService) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	started := time.Now()
	snapshot, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToLoadAssets, err)
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	log.Info().
		Int("items", len(snapshot.Items)).
		Int("brokers", len(snapshot.Brokers)).
		Int("funds", len(snapshot.Funds)).
		Int("stocks", len(snapshot.Stocks)).
		Dur("elapsed", time.Since(started)).
		Msg("asset snapshot refreshed")

	return nil
}

// Snapshot returns the current snapshot, or ErrAssetsNotLoaded when no load
// has succeeded yet.
func (s *AssetService) Snapshot() (*AssetSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, apperrors.ErrAssetsNotLoaded
	}
	return s.snapshot, nil
}

// MainCurrency resolves a query's reporting currency, falling back to the
// configured default when the query does not name one.
func (s *AssetService) MainCurrency(requested string) string {
	if requested == "" {
		return s.mainCurrency
	}
	return requested
}

// Overview builds the 3-level grouped summary of the current snapshot,
// converted to mainCcy.
func (s *AssetService) Overview(mainCcy string, level1, level2, level3 model.GroupBy) (*model.Overview, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	for _, g := range []model.GroupBy{level1, level2, level3} {
		if !g.Valid() {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidGroupBy, g)
		}
	}

	return BuildOverview(snapshot.Items, s.MainCurrency(mainCcy), level1, level2, level3, snapshot.Quotes), nil
}

// SumGroup builds a flat single-level summary of the current snapshot by one
// grouping key, converted to mainCcy.
func (s *AssetService) SumGroup(mainCcy string, group model.GroupBy) ([]model.OverviewItem, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	if !group.Valid() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrInvalidGroupBy, group)
	}

	return BuildSumGroup(snapshot.Items, s.MainCurrency(mainCcy), group, snapshot.Quotes), nil
}

// LatestQuote returns the latest known quote for a symbol from the current
// snapshot.
func (s *AssetService) LatestQuote(symbol string) (model.Quote, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return model.Quote{}, err
	}

	q, ok := snapshot.Quotes.Latest(symbol)
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: %s", apperrors.ErrQuoteNotFound, symbol)
	}
	return q, nil
}

// Currencies returns every currency appearing in the current snapshot's
// asset items, sorted order not guaranteed.
func (s *AssetService) Currencies() ([]string, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	currencies := []string{}
	for _, item := range snapshot.Items {
		if !seen[item.Currency] {
			seen[item.Currency] = true
			currencies = append(currencies, item.Currency)
		}
	}
	return currencies, nil
}

// CurrencyPairQuotes returns the quotes of all FX pairs known to the current
// snapshot.
func (s *AssetService) CurrencyPairQuotes() ([]model.Quote, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snapshot.Quotes.CurrencyPairs(), nil
}
