package repos

import (
	"errors"
	"strings"

	"twostreet/internal/domain"
	"twostreet/internal/store"
)

// ErrEmailTaken is the conflict surfaced when registration reuses an email.
var ErrEmailTaken = errors.New("email already registered")

// errNoRow short-circuits an update so a lookup miss skips the file rewrite.
var errNoRow = errors.New("no row")

type UserRepo struct{ S *store.Store }

func NewUserRepo(s *store.Store) *UserRepo { return &UserRepo{S: s} }

// ByID returns a copy of the user, or nil when absent.
func (r *UserRepo) ByID(id int) *domain.User {
	var out *domain.User
	r.S.View(func(d *store.Dataset) {
		for _, u := range d.Users {
			if u.ID == id {
				cp := u
				out = &cp
				return
			}
		}
	})
	return out
}

// ByEmail matches case-insensitively; emails are unique under that folding.
func (r *UserRepo) ByEmail(email string) *domain.User {
	target := strings.ToLower(strings.TrimSpace(email))
	if target == "" {
		return nil
	}
	var out *domain.User
	r.S.View(func(d *store.Dataset) {
		for _, u := range d.Users {
			if strings.ToLower(u.Email) == target {
				cp := u
				out = &cp
				return
			}
		}
	})
	return out
}

func (r *UserRepo) All() []domain.User {
	var out []domain.User
	r.S.View(func(d *store.Dataset) {
		out = append(out, d.Users...)
	})
	return out
}

// Create assigns the next ID and inserts the user. The duplicate lookup and
// the insert happen under one store lock so two concurrent registrations
// cannot both pass the check.
func (r *UserRepo) Create(u domain.User) (domain.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	if u.Status == "" {
		u.Status = domain.StatusActive
	}
	err := r.S.Update(func(d *store.Dataset) error {
		for _, existing := range d.Users {
			if strings.ToLower(existing.Email) == u.Email {
				return ErrEmailTaken
			}
		}
		u.ID = d.NextUserID()
		u.CreatedAt = store.Now()
		d.Users = append(d.Users, u)
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// UserUpdate is a partial merge; nil fields keep the stored value.
type UserUpdate struct {
	Name         *string
	Phone        *string
	MatricNumber *string
	Status       *string
	Password     *string
}

// Update merges the given fields into the user. A missing ID is not an error:
// the result is (nil, nil) and the caller translates that to not-found.
func (r *UserRepo) Update(id int, up UserUpdate) (*domain.User, error) {
	var out *domain.User
	err := r.S.Update(func(d *store.Dataset) error {
		for i := range d.Users {
			if d.Users[i].ID != id {
				continue
			}
			u := &d.Users[i]
			if up.Name != nil {
				u.Name = *up.Name
			}
			if up.Phone != nil {
				u.Phone = *up.Phone
			}
			if up.MatricNumber != nil {
				u.MatricNumber = *up.MatricNumber
			}
			if up.Status != nil {
				u.Status = *up.Status
			}
			if up.Password != nil {
				u.Password = *up.Password
			}
			cp := *u
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
