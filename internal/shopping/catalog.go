package shopping

import (
	"context"

	"github.com/nandovidal/platewise/internal/models"
)

// Quote is a price quote as seen by the optimizer
type Quote struct {
	SupermarketID   int
	SupermarketName string
	PricePerUnit    float64
	Unit            models.PriceUnit
}

type exclusionKey struct {
	ingredientID  int
	supermarketID int
}

// Catalog is a per-request snapshot of active supermarkets, price quotes
// and the requesting user's exclusions. It is read once at the start of a
// computation and never mutated.
type Catalog struct {
	supermarkets map[int]*models.Supermarket
	excluded     map[exclusionKey]bool
	quotes       map[int][]Quote // per ingredient, active supermarkets only
}

// loadCatalog fetches the catalog snapshot for the given ingredients
func (p *Planner) loadCatalog(ctx context.Context, userID int, ingredientIDs []int) (*Catalog, error) {
	active, err := p.src.ActiveSupermarkets(ctx)
	if err != nil {
		return nil, err
	}
	supermarkets := make(map[int]*models.Supermarket, len(active))
	for _, s := range active {
		supermarkets[s.ID] = s
	}

	exclusions, err := p.src.ExclusionsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded := make(map[exclusionKey]bool, len(exclusions))
	for _, e := range exclusions {
		excluded[exclusionKey{e.IngredientID, e.SupermarketID}] = true
	}

	quotes := make(map[int][]Quote, len(ingredientIDs))
	for _, id := range ingredientIDs {
		raw, err := p.src.QuotesForIngredient(ctx, id)
		if err != nil {
			return nil, err
		}
		for _, q := range raw {
			s, ok := supermarkets[q.SupermarketID]
			if !ok {
				// Inactive supermarkets keep historical prices but are
				// never considered
				continue
			}
			quotes[id] = append(quotes[id], Quote{
				SupermarketID:   q.SupermarketID,
				SupermarketName: s.Name,
				PricePerUnit:    q.PricePerUnit,
				Unit:            q.Unit,
			})
		}
	}

	return &Catalog{
		supermarkets: supermarkets,
		excluded:     excluded,
		quotes:       quotes,
	}, nil
}

// EligibleQuotes returns the quotes the optimizer may allocate an
// ingredient to: active supermarket, not excluded by the user
func (c *Catalog) EligibleQuotes(ingredientID int) []Quote {
	var eligible []Quote
	for _, q := range c.quotes[ingredientID] {
		if c.excluded[exclusionKey{ingredientID, q.SupermarketID}] {
			continue
		}
		eligible = append(eligible, q)
	}
	return eligible
}

// AllQuotes returns every active-supermarket quote for an ingredient,
// exclusions included. Used for the single-store savings baseline.
func (c *Catalog) AllQuotes(ingredientID int) []Quote {
	return c.quotes[ingredientID]
}
