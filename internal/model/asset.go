package model

// Asset type labels used as AssetItem.AssetType and as group keys.
const (
	AssetTypeCash  = "Cash"
	AssetTypeFunds = "Funds"
	AssetTypeStock = "Stock&ETF"
)

// GroupBy selects which AssetItem attribute a grouping level keys on.
type GroupBy string

// Grouping keys for overview and sum-group queries.
const (
	ByAssetType GroupBy = "asset"
	ByBroker    GroupBy = "broker"
	ByCurrency  GroupBy = "currency"
)

// Valid reports whether g is one of the defined grouping keys.
func (g GroupBy) Valid() bool {
	switch g {
	case ByAssetType, ByBroker, ByCurrency:
		return true
	}
	return false
}

// Key returns the grouping key of item for this GroupBy.
func (g GroupBy) Key(item AssetItem) string {
	switch g {
	case ByBroker:
		return item.Broker
	case ByCurrency:
		return item.Currency
	default:
		return item.AssetType
	}
}

// AssetItem is the normalized unit of aggregation: the value and profit of one
// asset type at one broker in one currency, both in that native currency.
// Profit is NaN when the item could not be priced.
type AssetItem struct {
	AssetType string  `json:"assetType"`
	Broker    string  `json:"broker"`
	Currency  string  `json:"currency"`
	Value     float64 `json:"value"`
	Profit    float64 `json:"profit"`
}

// OverviewItem is a leaf of an overview tree, or one row of a flat sum group.
// It keeps the native-currency figures alongside the ones converted to the
// query's main currency; the converted figures are NaN when no FX pair is
// known for the item's currency.
type OverviewItem struct {
	Name            string  `json:"name"`
	Currency        string  `json:"currency"`
	Value           float64 `json:"value"`
	ValueInMainCcy  float64 `json:"valueInMainCcy"`
	Profit          float64 `json:"profit"`
	ProfitInMainCcy float64 `json:"profitInMainCcy"`
}

// OverviewContainer is a level-2 node: the items grouped under one level-2
// key, with their converted values and profits summed.
type OverviewContainer struct {
	Name            string         `json:"name"`
	ItemName        string         `json:"itemName"`
	ValueSumInMain  float64        `json:"valueSumInMainCcy"`
	ProfitSumInMain float64        `json:"profitSumInMainCcy"`
	Items           []OverviewItem `json:"items"`
}

// OverviewContainerContainer is a level-1 node: the level-2 containers grouped
// under one level-1 key, with their sums accumulated once more.
type OverviewContainerContainer struct {
	Name            string              `json:"name"`
	ItemName        string              `json:"itemName"`
	ValueSumInMain  float64             `json:"valueSumInMainCcy"`
	ProfitSumInMain float64             `json:"profitSumInMainCcy"`
	Containers      []OverviewContainer `json:"containers"`
}

// Overview is a three-level grouped summary of all asset items, every figure
// converted into MainCurrency. The tree is built per query and owned by the
// caller; it shares nothing with the snapshot it was derived from.
type Overview struct {
	ItemName        string                       `json:"itemName"`
	MainCurrency    string                       `json:"mainCurrency"`
	ValueSumInMain  float64                      `json:"valueSumInMainCcy"`
	ProfitSumInMain float64                      `json:"profitSumInMainCcy"`
	Groups          []OverviewContainerContainer `json:"groups"`
}
