package service

import (
	"math"

	"github.com/rs/zerolog/log"
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// AssetItemBuilder turns the four loaded data sets into the flat, normalized
// AssetItem list the grouping engine aggregates over. One item exists per
// (asset type, broker, currency) combination after merging.
//
// The builder is tolerant of missing data per broker: a broker without cash,
// funds or open stock positions simply contributes no items for that
// category. A missing price never aborts the build either; it surfaces as a
// NaN value/profit on the affected item only.
type AssetItemBuilder struct {
	// FundCurrency is the currency all fund valuations are published in.
	FundCurrency string
}

// Build produces the normalized asset item list from brokers (cash), the fund
// portfolio and the stock portfolio, pricing stock positions off the quote
// index.
func (b *AssetItemBuilder) Build(
	brokers []model.Broker,
	funds []model.Fund,
	stocks []model.StockWithTransactions,
	quotes *QuoteIndex,
) []model.AssetItem {
	items := []model.AssetItem{}
	items = append(items, b.buildCash(brokers)...)
	items = append(items, b.buildFunds(funds)...)
	items = append(items, b.buildStocks(stocks, quotes)...)
	return items
}

// buildCash emits one item per (broker, currency) cash balance. Cash carries
// no profit.
func (b *AssetItemBuilder) buildCash(brokers []model.Broker) []model.AssetItem {
	items := []model.AssetItem{}
	for _, broker := range brokers {
		for _, cb := range broker.CashBalances {
			items = append(items, model.AssetItem{
				AssetType: model.AssetTypeCash,
				Broker:    broker.Name,
				Currency:  cb.Currency,
				Value:     cb.Balance,
				Profit:    0,
			})
		}
	}
	return items
}

// buildFunds groups fund positions by broker and emits one item per broker:
// value is the summed market value, profit the summed market value minus
// capital. All funds are valued in the configured fund currency.
func (b *AssetItemBuilder) buildFunds(funds []model.Fund) []model.AssetItem {
	type fundSum struct {
		value  float64
		profit float64
	}
	byBroker := make(map[string]*fundSum)
	order := []string{}

	for _, f := range funds {
		sum, ok := byBroker[f.Broker]
		if !ok {
			sum = &fundSum{}
			byBroker[f.Broker] = sum
			order = append(order, f.Broker)
		}
		sum.value += f.MarketValue
		sum.profit += f.MarketValue - f.Capital
	}

	items := make([]model.AssetItem, 0, len(order))
	for _, broker := range order {
		sum := byBroker[broker]
		items = append(items, model.AssetItem{
			AssetType: model.AssetTypeFunds,
			Broker:    broker,
			Currency:  b.FundCurrency,
			Value:     sum.value,
			Profit:    sum.profit,
		})
	}
	return items
}

// buildStocks runs the balance calculation per (instrument, broker)
// transaction group, values the surviving positions off the quote index and
// merges the results per (broker, currency).
//
// Groups that net out to exactly zero shares are skipped (fully closed
// positions report nothing). Groups whose balance comes back NaN were
// over-sold; they are logged and dropped so one bad history cannot take down
// the whole aggregation.
func (b *AssetItemBuilder) buildStocks(stocks []model.StockWithTransactions, quotes *QuoteIndex) []model.AssetItem {
	type position struct {
		value  float64
		profit float64
	}
	type mergeKey struct {
		broker   string
		currency string
	}
	merged := make(map[mergeKey]*position)
	order := []mergeKey{}

	for _, swt := range stocks {
		for _, group := range groupTransactionsByBroker(swt.Transactions) {
			balance := CalculateStockBalance(group.transactions)

			if math.IsNaN(balance.Shares) {
				log.Warn().
					Str("symbol", swt.Stock.Symbol).
					Str("broker", group.broker).
					Msg("dropping unresolvable stock position: more shares sold than bought")
				continue
			}
			if balance.Shares == 0 {
				continue
			}

			price := quotes.Price(swt.Stock.Symbol)
			value := price * balance.Shares
			profit := (price - balance.VWAP) * balance.Shares

			key := mergeKey{broker: group.broker, currency: swt.Stock.Currency}
			pos, ok := merged[key]
			if !ok {
				pos = &position{}
				merged[key] = pos
				order = append(order, key)
			}
			pos.value += value
			pos.profit += profit
		}
	}

	items := make([]model.AssetItem, 0, len(order))
	for _, key := range order {
		pos := merged[key]
		items = append(items, model.AssetItem{
			AssetType: model.AssetTypeStock,
			Broker:    key.broker,
			Currency:  key.currency,
			Value:     pos.value,
			Profit:    pos.profit,
		})
	}
	return items
}

type brokerTransactions struct {
	broker       string
	transactions []model.StockTransaction
}

// groupTransactionsByBroker splits one instrument's history into per-broker
// groups, preserving the original date order within each group.
func groupTransactionsByBroker(transactions []model.StockTransaction) []brokerTransactions {
	byBroker := make(map[string]int)
	groups := []brokerTransactions{}

	for _, tx := range transactions {
		i, ok := byBroker[tx.Broker]
		if !ok {
			i = len(groups)
			byBroker[tx.Broker] = i
			groups = append(groups, brokerTransactions{broker: tx.Broker})
		}
		groups[i].transactions = append(groups[i].transactions, tx)
	}
	return groups
}
