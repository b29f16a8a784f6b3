package domain

import "strings"

const (
	ListingActive = "active"
	ListingSold   = "sold"
)

// Categories and conditions shown in the client's filter dropdowns.
var (
	Categories = []string{"Electronics", "Furniture", "Books", "Appliances", "Others"}
	Conditions = []string{"Like New", "Good", "Fair"}
)

type Listing struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Condition   string  `json:"condition"`
	Location    string  `json:"location,omitempty"`
	Images      string  `json:"images"` // comma-joined image references
	Status      string  `json:"status"`
	Clicks      int     `json:"clicks"`
	CreatedAt   string  `json:"created_at"`
}

// ImageList splits the comma-joined images field, dropping empty segments.
func (l Listing) ImageList() []string {
	var out []string
	for _, img := range strings.Split(l.Images, ",") {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}

// JoinImages builds the stored images field from an ordered reference list.
func JoinImages(refs []string) string {
	var kept []string
	for _, r := range refs {
		if r = strings.TrimSpace(r); r != "" {
			kept = append(kept, r)
		}
	}
	return strings.Join(kept, ",")
}

func ValidCategory(s string) bool  { return contains(Categories, s) }
func ValidCondition(s string) bool { return contains(Conditions, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
