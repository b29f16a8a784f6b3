package services

import (
	"sort"
	"strings"
	"time"

	"twostreet/internal/domain"
	"twostreet/internal/repos"
)

const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

func ValidSort(s string) bool {
	switch s {
	case SortNewest, SortOldest, SortPriceLow, SortPriceHigh:
		return true
	}
	return false
}

// Criteria are the optional, conjunctive catalog filters. Nil price bounds
// mean unbounded; an inverted range legitimately yields zero results.
type Criteria struct {
	Search    string
	Category  string
	Condition string
	Location  string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
}

type CatalogService struct {
	Listings *repos.ListingRepo
}

func NewCatalogService(listings *repos.ListingRepo) *CatalogService {
	return &CatalogService{Listings: listings}
}

// Search returns the filtered, ordered catalog view. Sold or removed listings
// never appear. The sort is stable, so ties keep the collection order.
func (s *CatalogService) Search(c Criteria) []domain.Listing {
	return Filter(s.Listings.All(), c)
}

// Filter is the pure pipeline over a listing snapshot; Search is just Filter
// applied to the live collection.
func Filter(listings []domain.Listing, c Criteria) []domain.Listing {
	keyword := strings.ToLower(strings.TrimSpace(c.Search))
	location := strings.ToLower(strings.TrimSpace(c.Location))

	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Status != domain.ListingActive {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(l.Title), keyword) &&
			!strings.Contains(strings.ToLower(l.Description), keyword) {
			continue
		}
		if c.Category != "" && l.Category != c.Category {
			continue
		}
		if c.Condition != "" && l.Condition != c.Condition {
			continue
		}
		if location != "" && (l.Location == "" || !strings.Contains(strings.ToLower(l.Location), location)) {
			continue
		}
		if c.MinPrice != nil && l.Price < *c.MinPrice {
			continue
		}
		if c.MaxPrice != nil && l.Price > *c.MaxPrice {
			continue
		}
		out = append(out, l)
	}

	switch c.SortBy {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return createdAt(out[i]).Before(createdAt(out[j]))
		})
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	default: // newest
		sort.SliceStable(out, func(i, j int) bool {
			return createdAt(out[j]).Before(createdAt(out[i]))
		})
	}
	return out
}

func createdAt(l domain.Listing) time.Time {
	t, err := time.Parse(time.RFC3339Nano, l.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}
