package service

import (
	"github.com/twatanabe/Asset-Overview-Backend/internal/model"
)

// Labels attached to tree nodes describing what the next level groups by.
var groupLabels = map[model.GroupBy]string{
	model.ByAssetType: "Asset",
	model.ByBroker:    "Broker",
	model.ByCurrency:  "Currency",
}

// GroupLabel returns the display label of a grouping key.
func GroupLabel(g model.GroupBy) string {
	return groupLabels[g]
}

// BuildOverview groups the asset items three levels deep by the given keys
// and sums value and profit bottom-up, every figure converted into mainCcy.
//
// Leaves keep their native-currency figures next to the converted ones; an
// item whose currency cannot be converted stays in the tree with NaN
// converted figures, and that NaN flows into its group's sums (NaN + x is
// NaN). Group traversal order follows first appearance in the item list and
// is not part of the contract.
//
// The returned tree is freshly built and shares nothing with the input
// items; the caller owns it outright.
func BuildOverview(
	items []model.AssetItem,
	mainCcy string,
	level1, level2, level3 model.GroupBy,
	quotes *QuoteIndex,
) *model.Overview {
	overview := &model.Overview{
		ItemName:     groupLabels[level1],
		MainCurrency: mainCcy,
	}

	for _, l1group := range groupItems(items, level1) {
		container2 := model.OverviewContainerContainer{
			Name:     l1group.key,
			ItemName: groupLabels[level2],
		}

		for _, l2group := range groupItems(l1group.items, level2) {
			container := model.OverviewContainer{
				Name:     l2group.key,
				ItemName: groupLabels[level3],
			}

			for _, item := range l2group.items {
				leaf := model.OverviewItem{
					Name:            level3.Key(item),
					Currency:        item.Currency,
					Value:           item.Value,
					ValueInMainCcy:  quotes.ToMainCurrency(item.Value, item.Currency, mainCcy),
					Profit:          item.Profit,
					ProfitInMainCcy: quotes.ToMainCurrency(item.Profit, item.Currency, mainCcy),
				}
				container.ValueSumInMain += leaf.ValueInMainCcy
				container.ProfitSumInMain += leaf.ProfitInMainCcy
				container.Items = append(container.Items, leaf)
			}

			container2.ValueSumInMain += container.ValueSumInMain
			container2.ProfitSumInMain += container.ProfitSumInMain
			container2.Containers = append(container2.Containers, container)
		}

		overview.ValueSumInMain += container2.ValueSumInMain
		overview.ProfitSumInMain += container2.ProfitSumInMain
		overview.Groups = append(overview.Groups, container2)
	}

	return overview
}

// BuildSumGroup is the single-level variant of BuildOverview: it sums the
// converted value and profit of all items sharing one grouping key. Used for
// quick totals by asset type or broker without building the full tree.
func BuildSumGroup(
	items []model.AssetItem,
	mainCcy string,
	group model.GroupBy,
	quotes *QuoteIndex,
) []model.OverviewItem {
	result := []model.OverviewItem{}

	for _, g := range groupItems(items, group) {
		sum := model.OverviewItem{
			Name:     g.key,
			Currency: mainCcy,
		}
		for _, item := range g.items {
			converted := quotes.ToMainCurrency(item.Value, item.Currency, mainCcy)
			convertedProfit := quotes.ToMainCurrency(item.Profit, item.Currency, mainCcy)
			sum.Value += converted
			sum.ValueInMainCcy += converted
			sum.Profit += convertedProfit
			sum.ProfitInMainCcy += convertedProfit
		}
		result = append(result, sum)
	}

	return result
}

type itemGroup struct {
	key   string
	items []model.AssetItem
}

// groupItems buckets items by the grouping key, keeping groups in order of
// first appearance and items in their original order. Key equality is exact
// string match.
func groupItems(items []model.AssetItem, g model.GroupBy) []itemGroup {
	index := make(map[string]int)
	groups := []itemGroup{}

	for _, item := range items {
		key := g.Key(item)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, itemGroup{key: key})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups
}
