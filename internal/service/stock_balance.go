package service

import (
	"math"

	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// openLot is one still-open buy tranche. Lots live only inside the balance
// calculation's FIFO queue and are consumed front-first by sells.
type openLot struct {
	price  float64
	shares float64
}

// CalculateStockBalance replays a date-ordered transaction history for one
// instrument and returns the resulting position balance.
//
// The calculation matches lots FIFO:
//   - BUY pushes a new open lot and records its cost as negative liquidated
//     cash (liquidated tracks net cash realized, so a negative value means
//     capital is still deployed in the market).
//   - SELL adds its proceeds to liquidated and consumes shares from the oldest
//     open lots first, splitting a lot when the sell is smaller than the lot's
//     remainder.
//   - SPLIT carries the 1-to-N ratio in the Shares field: the running share
//     balance is multiplied by the ratio and floored to a whole number, and
//     every open lot's per-share price is divided (and share count multiplied)
//     by the ratio, preserving each lot's total cost.
//
// Every transaction's fee, splits included, accumulates into the balance.
// VWAP is the volume-weighted average cost of the lots still open after the
// replay, or 0 when the position is fully closed.
//
// Selling more shares than the open lots hold makes the position
// unresolvable; the function then returns the all-NaN sentinel balance
// rather than an error, because it runs inside hot aggregation loops whose
// callers are prepared to drop such positions. Check math.IsNaN(Shares)
// before using any field.
func CalculateStockBalance(transactions []model.StockTransaction) model.StockBalance {
	var shares, fee, liquidated float64
	lots := []openLot{}

	for _, tx := range transactions {
		fee += tx.Fee

		switch tx.Side {
		case model.SideBuy:
			shares += tx.Shares
			liquidated -= tx.Price * tx.Shares
			lots = append(lots, openLot{price: tx.Price, shares: tx.Shares})
		case model.SideSell:
			shares -= tx.Shares
			liquidated += tx.Price * tx.Shares

			remaining := tx.Shares
			for remaining > 0 {
				if len(lots) == 0 {
					// sold more than was ever bought
					return unresolvableBalance()
				}
				front := &lots[0]
				if front.shares > remaining {
					front.shares -= remaining
					remaining = 0
				} else {
					remaining -= front.shares
					lots = lots[1:]
				}
			}
		case model.SideSplit:
			ratio := tx.Shares
			shares = math.Floor(shares * ratio)
			for i := range lots {
				lots[i].price /= ratio
				lots[i].shares *= ratio
			}
		}
	}

	var openShares, openCost float64
	for _, lot := range lots {
		openShares += lot.shares
		openCost += lot.price * lot.shares
	}

	// explicit zero, not NaN: "no open position" is a valid state
	vwap := 0.0
	if openShares > 0 {
		vwap = openCost / openShares
	}

	return model.StockBalance{
		Shares:     shares,
		VWAP:       vwap,
		Fee:        fee,
		Liquidated: liquidated,
	}
}

func unresolvableBalance() model.StockBalance {
	nan := math.NaN()
	return model.StockBalance{
		Shares:     nan,
		VWAP:       nan,
		Fee:        nan,
		Liquidated: nan,
	}
}
