package repos

import (
	"twostreet/internal/domain"
	"twostreet/internal/store"
)

type StatsRepo struct{ S *store.Store }

func NewStatsRepo(s *store.Store) *StatsRepo { return &StatsRepo{S: s} }

// Totals is a pure derived read over the snapshot; it has no side effects.
func (r *StatsRepo) Totals() domain.Stats {
	var st domain.Stats
	r.S.View(func(d *store.Dataset) {
		st.TotalUsers = len(d.Users)
		st.TotalListings = len(d.Listings)
		for _, l := range d.Listings {
			switch l.Status {
			case domain.ListingActive:
				st.ActiveListings++
			case domain.ListingSold:
				st.SoldListings++
			}
		}
	})
	return st
}
