package service

import (
	"math"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// QuoteIndex maps symbols to their latest known quote and answers FX
// conversions between currencies. FX pairs follow the "CCY1CCY2=X" symbol
// convention ("USDJPY=X" quotes the USD price in JPY).
//
// Pairs are told apart from stock quotes by exclusion: a quoted symbol that
// is not in the known-stock set is taken to be an FX pair. That heuristic
// breaks if a non-stock, non-FX instrument is ever quoted; the stock set
// must stay in sync with whatever the quote pipeline fetches.
type QuoteIndex struct {
	bySymbol    map[string]model.Quote
	knownStocks map[string]bool
}

// NewQuoteIndex builds an index over the given quotes. knownStocks is the
// full set of stock symbols, used to classify the remaining quoted symbols
// as FX pairs.
func NewQuoteIndex(quotes []model.Quote, knownStocks []string) *QuoteIndex {
	idx := &QuoteIndex{
		bySymbol:    make(map[string]model.Quote, len(quotes)),
		knownStocks: make(map[string]bool, len(knownStocks)),
	}
	for _, q := range quotes {
		idx.bySymbol[q.Symbol] = q
	}
	for _, s := range knownStocks {
		idx.knownStocks[s] = true
	}
	return idx
}

// Latest returns the latest quote for a symbol, matching exactly.
func (idx *QuoteIndex) Latest(symbol string) (model.Quote, bool) {
	q, ok := idx.bySymbol[symbol]
	return q, ok
}

// Price returns the latest rate for a symbol, or NaN when the symbol has no
// quote. The NaN flows through valuations as "value unknown".
func (idx *QuoteIndex) Price(symbol string) float64 {
	if q, ok := idx.bySymbol[symbol]; ok {
		return q.Rate
	}
	return math.NaN()
}

// ToMainCurrency converts value from ccy into mainCcy. The direct pair
// ("{ccy}{main}=X") multiplies; failing that, the inverse pair divides.
// When neither pair is quoted the result is NaN, which downstream sums
// absorb as "unconvertible" rather than treating it as an error.
func (idx *QuoteIndex) ToMainCurrency(value float64, ccy, mainCcy string) float64 {
	if ccy == mainCcy {
		return value
	}
	if q, ok := idx.bySymbol[ccy+mainCcy+"=X"]; ok {
		return value * q.Rate
	}
	if q, ok := idx.bySymbol[mainCcy+ccy+"=X"]; ok {
		return value / q.Rate
	}
	return math.NaN()
}

// CurrencyPairs returns the quotes of every symbol classified as an FX pair,
// i.e. every quoted symbol not in the known-stock set.
func (idx *QuoteIndex) CurrencyPairs() []model.Quote {
	pairs := []model.Quote{}
	for symbol, q := range idx.bySymbol {
		if !idx.knownStocks[symbol] {
			pairs = append(pairs, q)
		}
	}
	return pairs
}
