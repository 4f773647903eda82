package results

import (
	"fmt"
	"strings"

	"cartscout/internal/api"

	"github.com/shopspring/decimal"
)

// RenderText renders groups as a plain-text report for the headless search
// command. The interactive UI styles the same groups itself.
func RenderText(groups []Group, summary Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Found prices for %d of %d items (%d products, backend time %s)\n\n",
		summary.ItemsWithResults, summary.TotalItems, summary.TotalProducts, summary.TotalTime)

	for _, g := range groups {
		if !g.Found {
			fmt.Fprintf(&b, "%s\n  no products found\n\n", g.Item)
			continue
		}

		fmt.Fprintf(&b, "%s\n", g.Item)
		top := g.Best[0]
		fmt.Fprintf(&b, "  best: %s at %s%s\n", formatPrice(top.Price), top.Merchant, formatLocation(top.Location))
		if n := g.OtherStores(); n > 0 {
			fmt.Fprintf(&b, "  same price at %d other store(s): %s\n", n, merchantList(g.Best[1:]))
		}
		for _, p := range g.Products[len(g.Best):] {
			fmt.Fprintf(&b, "  also: %s at %s%s\n", formatPrice(p.Price), p.Merchant, formatLocation(p.Location))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func formatLocation(loc string) string {
	if loc == "" {
		return ""
	}
	return " (" + loc + ")"
}

func merchantList(products []api.Product) string {
	names := make([]string, len(products))
	for i, p := range products {
		names[i] = p.Merchant
	}
	return strings.Join(names, ", ")
}
