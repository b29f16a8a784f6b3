package repos

import (
	"errors"
	"strings"

	"twostreet/internal/domain"
	"twostreet/internal/store"
)

type ReportRepo struct{ S *store.Store }

func NewReportRepo(s *store.Store) *ReportRepo { return &ReportRepo{S: s} }

func (r *ReportRepo) All() []domain.Report {
	var out []domain.Report
	r.S.View(func(d *store.Dataset) {
		out = append(out, d.Reports...)
	})
	return out
}

// Create inserts at the head of the collection. Status is always pending on
// creation regardless of input.
func (r *ReportRepo) Create(rep domain.Report) (domain.Report, error) {
	rep.Reason = strings.TrimSpace(rep.Reason)
	rep.Status = domain.ReportPending
	err := r.S.Update(func(d *store.Dataset) error {
		rep.ID = d.NextReportID()
		rep.CreatedAt = store.Now()
		d.Reports = append([]domain.Report{rep}, d.Reports...)
		return nil
	})
	if err != nil {
		return domain.Report{}, err
	}
	return rep, nil
}

// UpdateStatus stores whatever status it is given; validating against the
// fixed enum is the caller's job.
func (r *ReportRepo) UpdateStatus(id int, status string) (*domain.Report, error) {
	var out *domain.Report
	err := r.S.Update(func(d *store.Dataset) error {
		for i := range d.Reports {
			if d.Reports[i].ID == id {
				d.Reports[i].Status = status
				cp := d.Reports[i]
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
