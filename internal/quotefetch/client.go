// Package quotefetch retrieves latest close prices for stocks and FX pairs
// from the Yahoo Finance chart API.
package quotefetch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// Client fetches quotes over HTTP. It is safe for concurrent use.
type Client struct {
	client *resty.Client
}

// New creates a quote client against the given API base URL
// (e.g. "https://query1.finance.yahoo.com").
func New(baseURL string, timeout time.Duration) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36").
		SetHeader("Accept", "application/json")
	return &Client{client: client}
}

// FetchLatest returns the most recent daily close for a symbol. It asks for
// a five-day range and takes the last day that actually has a close price,
// so weekends and holidays do not produce an empty result.
func (c *Client) FetchLatest(ctx context.Context, symbol string) (model.Quote, error) {
	url := fmt.Sprintf("/v8/finance/chart/%s?interval=1d&range=5d", symbol)

	resp, err := c.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return model.Quote{}, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	var chart chartResponse
	if err := json.Unmarshal(resp.Body(), &chart); err != nil {
		return model.Quote{}, fmt.Errorf("failed to parse quote response for %s: %w", symbol, err)
	}

	if chart.Chart.Error != nil {
		return model.Quote{}, fmt.Errorf("quote API error for %s: %s", symbol, chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return model.Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Timestamp) == 0 ||
		len(result.Indicators.Quote) == 0 ||
		len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return model.Quote{}, fmt.Errorf("no usable price data for symbol %s", symbol)
	}

	closes := result.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != 0 {
			return model.Quote{
				Symbol: symbol,
				Date:   time.Unix(result.Timestamp[i], 0).UTC(),
				Rate:   closes[i],
			}, nil
		}
	}

	return model.Quote{}, fmt.Errorf("no close price for symbol %s", symbol)
}

// FetchLatestBatch fetches the latest quote for each symbol sequentially,
// skipping symbols that fail with a diagnostic. A partial result is normal
// operation for this API, not an error.
func (c *Client) FetchLatestBatch(ctx context.Context, symbols []string) []model.Quote {
	quotes := make([]model.Quote, 0, len(symbols))
	for _, symbol := range symbols {
		q, err := c.FetchLatest(ctx, symbol)
		if err != nil {
			log.Warn().Err(err).Str("symbol", symbol).Msg("skipping symbol in quote fetch")
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes
}
