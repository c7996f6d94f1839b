package shopping

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// OptimizedItem is a shopping list row with its cheapest eligible quote.
// The price fields are absent, not zero, when no eligible quote exists.
type OptimizedItem struct {
	ListItem
	CheapestPrice         *float64 `json:"cheapest_price,omitempty"`
	CheapestSupermarket   *string  `json:"cheapest_supermarket,omitempty"`
	CheapestSupermarketID *int     `json:"cheapest_supermarket_id,omitempty"`
	TotalCost             *float64 `json:"total_cost,omitempty"`
}

// SupermarketTotal sums the cost of the items allocated to one supermarket
type SupermarketTotal struct {
	SupermarketID   int     `json:"supermarket_id"`
	SupermarketName string  `json:"supermarket_name"`
	TotalPrice      float64 `json:"total_price"`
	ItemCount       int     `json:"item_count"`
}

// OptimizedList is the cost-optimized shopping plan for a date range
type OptimizedList struct {
	StartDate               string             `json:"start_date"`
	EndDate                 string             `json:"end_date"`
	Items                   []OptimizedItem    `json:"items"`
	SupermarketTotals       []SupermarketTotal `json:"supermarket_totals"`
	TotalItems              int                `json:"total_items"`
	ItemsWithPrices         int                `json:"items_with_prices"`
	TotalOptimized          float64            `json:"total_optimized"`
	RecommendedDistribution string             `json:"recommended_distribution"`
	PotentialSavings        *float64           `json:"potential_savings,omitempty"`
}

// BuildOptimizedList aggregates the shopping list for the range and
// allocates every ingredient to the supermarket with its lowest eligible
// quote
func (p *Planner) BuildOptimizedList(ctx context.Context, userID int, start, end time.Time) (*OptimizedList, error) {
	list, err := p.BuildList(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	ids := make([]int, len(list.Items))
	for i, item := range list.Items {
		ids[i] = item.IngredientID
	}

	catalog, err := p.loadCatalog(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	return Optimize(list, catalog), nil
}

// Optimize allocates each list item to the supermarket offering its
// lowest unit price among eligible quotes. Ties are broken by the lowest
// supermarket id so repeated runs over unchanged data produce identical
// output.
func Optimize(list *List, catalog *Catalog) *OptimizedList {
	out := &OptimizedList{
		StartDate:         list.StartDate,
		EndDate:           list.EndDate,
		Items:             make([]OptimizedItem, 0, len(list.Items)),
		SupermarketTotals: []SupermarketTotal{},
		TotalItems:        list.TotalItems,
	}

	perStore := make(map[int]*SupermarketTotal)

	for _, item := range list.Items {
		best, found := cheapestQuote(catalog.EligibleQuotes(item.IngredientID), item)
		if !found {
			out.Items = append(out.Items, OptimizedItem{ListItem: item})
			continue
		}

		price := best.PricePerUnit
		cost := item.TotalAmount * price
		name := best.SupermarketName
		storeID := best.SupermarketID

		out.Items = append(out.Items, OptimizedItem{
			ListItem:              item,
			CheapestPrice:         &price,
			CheapestSupermarket:   &name,
			CheapestSupermarketID: &storeID,
			TotalCost:             &cost,
		})

		total, ok := perStore[storeID]
		if !ok {
			total = &SupermarketTotal{SupermarketID: storeID, SupermarketName: name}
			perStore[storeID] = total
		}
		total.TotalPrice += cost
		total.ItemCount++
		out.TotalOptimized += cost
		out.ItemsWithPrices++
	}

	for _, total := range perStore {
		out.SupermarketTotals = append(out.SupermarketTotals, *total)
	}
	sort.Slice(out.SupermarketTotals, func(i, j int) bool {
		a, b := out.SupermarketTotals[i], out.SupermarketTotals[j]
		if a.ItemCount != b.ItemCount {
			return a.ItemCount > b.ItemCount
		}
		return a.SupermarketID < b.SupermarketID
	})

	out.RecommendedDistribution = recommendDistribution(out.SupermarketTotals)
	out.PotentialSavings = potentialSavings(out, catalog)

	return out
}

// cheapestQuote picks the minimum-price quote whose unit matches the
// item's measurement category. On equal prices the lowest supermarket id
// wins.
func cheapestQuote(quotes []Quote, item ListItem) (Quote, bool) {
	var best Quote
	found := false
	for _, q := range quotes {
		category, ok := priceUnitCategory(q.Unit)
		if !ok || category != item.Category {
			continue
		}
		if !found ||
			q.PricePerUnit < best.PricePerUnit ||
			(q.PricePerUnit == best.PricePerUnit && q.SupermarketID < best.SupermarketID) {
			best = q
			found = true
		}
	}
	return best, found
}

// recommendDistribution builds the human-readable purchase recommendation
// enumerating each supermarket's allocation
func recommendDistribution(totals []SupermarketTotal) string {
	switch len(totals) {
	case 0:
		return "No prices available. Please add prices to get recommendations."
	case 1:
		s := totals[0]
		return fmt.Sprintf("Buy all %d items at %s for €%.2f", s.ItemCount, s.SupermarketName, s.TotalPrice)
	case 2:
		return fmt.Sprintf("Best option: Buy %d items at %s (€%.2f) and %d items at %s (€%.2f)",
			totals[0].ItemCount, totals[0].SupermarketName, totals[0].TotalPrice,
			totals[1].ItemCount, totals[1].SupermarketName, totals[1].TotalPrice)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recommended: Buy %d items at %s (€%.2f), %d at %s (€%.2f)",
		totals[0].ItemCount, totals[0].SupermarketName, totals[0].TotalPrice,
		totals[1].ItemCount, totals[1].SupermarketName, totals[1].TotalPrice)

	othersCount := 0
	othersTotal := 0.0
	for _, s := range totals[2:] {
		othersCount += s.ItemCount
		othersTotal += s.TotalPrice
	}
	fmt.Fprintf(&b, ", and %d items at other supermarkets (€%.2f)", othersCount, othersTotal)

	return b.String()
}

// potentialSavings compares the optimized total against the cheapest
// single supermarket that could alone supply every priced item. Coverage
// ignores the user's exclusions but never considers inactive
// supermarkets. Returns nil when no single store carries all priced
// ingredients.
func potentialSavings(out *OptimizedList, catalog *Catalog) *float64 {
	if out.ItemsWithPrices == 0 {
		return nil
	}

	// Per supermarket, the cheapest matching quote for each priced item
	coverage := make(map[int]map[int]float64) // supermarket -> ingredient -> price
	pricedCount := 0
	for _, item := range out.Items {
		if item.TotalCost == nil {
			continue
		}
		pricedCount++
		for _, q := range catalog.AllQuotes(item.IngredientID) {
			category, ok := priceUnitCategory(q.Unit)
			if !ok || category != item.Category {
				continue
			}
			prices, ok := coverage[q.SupermarketID]
			if !ok {
				prices = make(map[int]float64)
				coverage[q.SupermarketID] = prices
			}
			if current, ok := prices[item.IngredientID]; !ok || q.PricePerUnit < current {
				prices[item.IngredientID] = q.PricePerUnit
			}
		}
	}

	bestCost := -1.0
	for _, prices := range coverage {
		if len(prices) < pricedCount {
			continue
		}
		cost := 0.0
		for _, item := range out.Items {
			if item.TotalCost == nil {
				continue
			}
			cost += item.TotalAmount * prices[item.IngredientID]
		}
		if bestCost < 0 || cost < bestCost {
			bestCost = cost
		}
	}
	if bestCost < 0 {
		return nil
	}

	savings := bestCost - out.TotalOptimized
	return &savings
}
