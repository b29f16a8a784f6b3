package services

import (
	"strings"

	applog "twostreet/internal/log"
	"twostreet/internal/repos"
)

// FallbackImage replaces legacy placeholder values during normalization.
const FallbackImage = "https://images.unsplash.com/photo-1517430816045-df4b7de11d1d?auto=format&fit=crop&w=900&q=80"

// legacySeedImages are bare filenames left over from the pre-migration seed
// data; they no longer resolve to anything servable.
var legacySeedImages = map[string]bool{
	"macbook.jpg": true,
	"table.jpg":   true,
	"book.jpg":    true,
	"samsung.jpg": true,
	"fridge.jpg":  true,
	"labcoat.jpg": true,
	"airpods.jpg": true,
}

// IntegrityService is the startup self-healing pass: it deletes listings
// whose owner no longer exists and normalizes legacy image references. Both
// passes are idempotent and run before the server accepts requests.
type IntegrityService struct {
	Users    *repos.UserRepo
	Listings *repos.ListingRepo
}

func NewIntegrityService(users *repos.UserRepo, listings *repos.ListingRepo) *IntegrityService {
	return &IntegrityService{Users: users, Listings: listings}
}

type IntegrityResult struct {
	OrphansRemoved   int
	ImagesNormalized int
}

func (s *IntegrityService) Run() (IntegrityResult, error) {
	var res IntegrityResult

	userIDs := map[int]bool{}
	for _, u := range s.Users.All() {
		userIDs[u.ID] = true
	}

	for _, l := range s.Listings.All() {
		if !userIDs[l.UserID] {
			removed, err := s.Listings.Delete(l.ID)
			if err != nil {
				return res, err
			}
			if removed {
				res.OrphansRemoved++
				applog.Audit(nil, "integrity.orphan.removed", map[string]any{
					"listing_id": l.ID, "title": l.Title, "user_id": l.UserID,
				})
			}
			continue
		}
		if isLegacyImage(l.Images) {
			img := FallbackImage
			if _, err := s.Listings.Update(l.ID, repos.ListingUpdate{Images: &img}); err != nil {
				return res, err
			}
			res.ImagesNormalized++
			applog.Info(nil, "integrity.image.normalized", map[string]any{
				"listing_id": l.ID, "was": l.Images,
			})
		}
	}
	return res, nil
}

func isLegacyImage(images string) bool {
	if legacySeedImages[images] {
		return true
	}
	// Dead placeholder service; any URL pointing at it is rewritten.
	return strings.Contains(strings.ToLower(images), "via.placeholder.com")
}
