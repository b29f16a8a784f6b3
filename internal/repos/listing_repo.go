package repos

import (
	"errors"

	"twostreet/internal/domain"
	"twostreet/internal/store"
)

type ListingRepo struct{ S *store.Store }

func NewListingRepo(s *store.Store) *ListingRepo { return &ListingRepo{S: s} }

func (r *ListingRepo) ByID(id int) *domain.Listing {
	var out *domain.Listing
	r.S.View(func(d *store.Dataset) {
		for _, l := range d.Listings {
			if l.ID == id {
				cp := l
				out = &cp
				return
			}
		}
	})
	return out
}

// All returns a copy of every listing in collection order (newest inserted
// first, matching how Create prepends).
func (r *ListingRepo) All() []domain.Listing {
	var out []domain.Listing
	r.S.View(func(d *store.Dataset) {
		out = append(out, d.Listings...)
	})
	return out
}

func (r *ListingRepo) ByUser(userID int) []domain.Listing {
	var out []domain.Listing
	r.S.View(func(d *store.Dataset) {
		for _, l := range d.Listings {
			if l.UserID == userID {
				out = append(out, l)
			}
		}
	})
	return out
}

// Create inserts at the head of the collection with the next ID, a fresh
// click counter and active status unless one was given. The owning user is
// not checked here; the startup integrity sweep removes any orphan.
func (r *ListingRepo) Create(l domain.Listing) (domain.Listing, error) {
	if l.Status == "" {
		l.Status = domain.ListingActive
	}
	l.Clicks = 0
	err := r.S.Update(func(d *store.Dataset) error {
		l.ID = d.NextListingID()
		l.CreatedAt = store.Now()
		d.Listings = append([]domain.Listing{l}, d.Listings...)
		return nil
	})
	if err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

// ListingUpdate is a partial merge; nil fields keep the stored value.
type ListingUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Condition   *string
	Location    *string
	Images      *string
	Status      *string
}

func (r *ListingRepo) Update(id int, up ListingUpdate) (*domain.Listing, error) {
	var out *domain.Listing
	err := r.S.Update(func(d *store.Dataset) error {
		for i := range d.Listings {
			if d.Listings[i].ID != id {
				continue
			}
			l := &d.Listings[i]
			if up.Title != nil {
				l.Title = *up.Title
			}
			if up.Description != nil {
				l.Description = *up.Description
			}
			if up.Price != nil {
				l.Price = *up.Price
			}
			if up.Category != nil {
				l.Category = *up.Category
			}
			if up.Condition != nil {
				l.Condition = *up.Condition
			}
			if up.Location != nil {
				l.Location = *up.Location
			}
			if up.Images != nil {
				l.Images = *up.Images
			}
			if up.Status != nil {
				l.Status = *up.Status
			}
			cp := *l
			out = &cp
			return nil
		}
		return errNoRow
	})
	if errors.Is(err, errNoRow) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the listing and reports whether a row was actually removed.
// When nothing matched the snapshot is left untouched on disk.
func (r *ListingRepo) Delete(id int) (bool, error) {
	err := r.S.Update(func(d *store.Dataset) error {
		for i := range d.Listings {
			if d.Listings[i].ID == id {
				d.Listings = append(d.Listings[:i], d.Listings[i+1:]...)
				return nil
			}
		}
		return errNoRow
	})
	if errors.Is(err, errNoRow) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ListingRepo) MarkStatus(id int, status string) (*domain.Listing, error) {
	return r.Update(id, ListingUpdate{Status: &status})
}

// IncrementClicks bumps the detail-view counter and persists in one step.
func (r *ListingRepo) IncrementClicks(id int) (*domain.Listing, error) {
	var out *domain.Listing
	err := r.S.Update(func(d *store.Dataset) error {
		for i := range d.Listings {
			if d.Listings[i].ID == id {
				d.Listings[i].Clicks++
				cp := d.Listings[i]
				out = &cp
				return nil
			}
		}
		return errNoRow
	})
	if errors.Is(err, errNoRow) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
