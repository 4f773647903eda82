// Package results groups a pricing job's products per cart item and computes
// the display summary. Everything here is a pure recomputation over the
// server-returned mapping and the cart order; nothing is maintained
// incrementally.
package results

import (
	"fmt"
	"sort"

	"cartscout/internal/api"
	"cartscout/internal/logging"
)

// Group is the display model for one cart item. Products are sorted ascending
// by price; Best holds every product sharing the minimum price, in the
// server-returned order. The first best product renders expanded, the rest
// collapse behind a count.
type Group struct {
	Item     string
	Found    bool
	Products []api.Product // sorted ascending by price
	Best     []api.Product // minimum-price tie group
}

// OtherStores is how many best-price products are collapsed behind the
// expanded first one.
func (g Group) OtherStores() int {
	if len(g.Best) <= 1 {
		return 0
	}
	return len(g.Best) - 1
}

// Summary holds the aggregate line above the per-item cards.
type Summary struct {
	ItemsWithResults int
	TotalItems       int
	TotalProducts    int
	TotalTime        string // formatted seconds, "-" when not reported
}

// Build produces one Group per cart item, in cart order. An item absent from
// the results mapping (or mapped to an empty list) yields an unfound Group,
// never an error.
func Build(items []string, byItem map[string][]api.Product) []Group {
	groups := make([]Group, 0, len(items))
	for _, item := range items {
		products := byItem[item]
		if len(products) == 0 {
			groups = append(groups, Group{Item: item})
			continue
		}

		sorted := make([]api.Product, len(products))
		copy(sorted, products)
		// Stable keeps server order among equal prices, which decides the
		// expanded entry of a tie group.
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price.LessThan(sorted[j].Price)
		})

		min := sorted[0].Price
		best := make([]api.Product, 0, 1)
		for _, p := range sorted {
			if !p.Price.Equal(min) {
				break
			}
			best = append(best, p)
		}

		groups = append(groups, Group{
			Item:     item,
			Found:    true,
			Products: sorted,
			Best:     best,
		})
	}
	logging.Results("built %d groups from %d result entries", len(groups), len(byItem))
	return groups
}

// Summarize computes the aggregate statistics for a results view.
func Summarize(items []string, byItem map[string][]api.Product, totalTime *float64) Summary {
	s := Summary{TotalItems: len(items), TotalTime: "-"}
	for _, item := range items {
		products := byItem[item]
		if len(products) > 0 {
			s.ItemsWithResults++
		}
		s.TotalProducts += len(products)
	}
	if totalTime != nil {
		s.TotalTime = fmt.Sprintf("%.1fs", *totalTime)
	}
	return s
}
