package domain

const (
	ReportPending   = "pending"
	ReportReviewing = "reviewing"
	ReportResolved  = "resolved"
	ReportDismissed = "dismissed"
)

var ReportStatuses = []string{ReportPending, ReportReviewing, ReportResolved, ReportDismissed}

func ValidReportStatus(s string) bool { return contains(ReportStatuses, s) }

type Report struct {
	ID        int    `json:"id"`
	ListingID int    `json:"listing_id"`
	// Reporter name/email are snapshotted at creation; admin views fall back to
	// the live user record when the snapshot is empty.
	ReporterID    int    `json:"reporter_id"`
	ReporterName  string `json:"reporter_name,omitempty"`
	ReporterEmail string `json:"reporter_email,omitempty"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalUsers     int `json:"totalUsers"`
	TotalListings  int `json:"totalListings"`
	ActiveListings int `json:"activeListings"`
	SoldListings   int `json:"soldListings"`
}
