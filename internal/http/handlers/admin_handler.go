package handlers

import (
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"twostreet/internal/domain"
	applog "twostreet/internal/log"
	"twostreet/internal/repos"
)

type AdminHandler struct {
	Users    *repos.UserRepo
	Listings *repos.ListingRepo
	Reports  *repos.ReportRepo
	Stats    *repos.StatsRepo
}

func (h *AdminHandler) UsersPage(c *fiber.Ctx) error {
	users := h.Users.All()
	sort.SliceStable(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return c.JSON(out)
}

// ListingsPage returns every listing regardless of status, newest first.
func (h *AdminHandler) ListingsPage(c *fiber.Ctx) error {
	listings := h.Listings.All()
	sort.SliceStable(listings, func(i, j int) bool {
		return listings[i].CreatedAt > listings[j].CreatedAt
	})
	return c.JSON(listings)
}

func (h *AdminHandler) DeleteListing(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return notFound(c, "Listing not found")
	}
	if _, err := h.Listings.Delete(id); err != nil {
		applog.Error(c, "admin.listing.delete.error", err, map[string]any{"listing_id": id})
		return serverError(c)
	}
	applog.Audit(c, "admin.listing.deleted", map[string]any{"listing_id": id})
	return c.JSON(fiber.Map{"message": "Listing deleted successfully"})
}

// ApproveListing flips a listing back to active.
func (h *AdminHandler) ApproveListing(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return notFound(c, "Listing not found")
	}
	if _, err := h.Listings.MarkStatus(id, domain.ListingActive); err != nil {
		applog.Error(c, "admin.listing.approve.error", err, map[string]any{"listing_id": id})
		return serverError(c)
	}
	return c.JSON(fiber.Map{"message": "Listing approved successfully"})
}

func (h *AdminHandler) BanUser(c *fiber.Ctx) error {
	return h.setUserStatus(c, domain.StatusBanned, "User banned successfully")
}

func (h *AdminHandler) UnbanUser(c *fiber.Ctx) error {
	return h.setUserStatus(c, domain.StatusActive, "User unbanned successfully")
}

// Users are never hard-deleted; moderation only flips active/banned.
func (h *AdminHandler) setUserStatus(c *fiber.Ctx, status, msg string) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return notFound(c, "User not found")
	}
	updated, err := h.Users.Update(id, repos.UserUpdate{Status: &status})
	if err != nil {
		applog.Error(c, "admin.user.status.error", err, map[string]any{"target_id": id})
		return serverError(c)
	}
	if updated == nil {
		return notFound(c, "User not found")
	}
	applog.Audit(c, "admin.user.status", map[string]any{"target_id": id, "status": status})
	return c.JSON(fiber.Map{"message": msg})
}

func (h *AdminHandler) StatsPage(c *fiber.Ctx) error {
	return c.JSON(h.Stats.Totals())
}

// adminReport is the moderation view: the stored report plus the joined
// listing title/status, with reporter fields falling back to the live user
// record when the creation-time snapshot is empty.
type adminReport struct {
	domain.Report
	ListingTitle  string `json:"listing_title,omitempty"`
	ListingStatus string `json:"listing_status,omitempty"`
}

func (h *AdminHandler) ReportsPage(c *fiber.Ctx) error {
	reports := h.Reports.All()
	out := make([]adminReport, 0, len(reports))
	for _, r := range reports {
		view := adminReport{Report: r}
		if r.ReporterName == "" || r.ReporterEmail == "" {
			if u := h.Users.ByID(r.ReporterID); u != nil {
				if view.ReporterName == "" {
					view.ReporterName = u.Name
				}
				if view.ReporterEmail == "" {
					view.ReporterEmail = u.Email
				}
			}
		}
		if l := h.Listings.ByID(r.ListingID); l != nil {
			view.ListingTitle = l.Title
			view.ListingStatus = l.Status
		}
		out = append(out, view)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return c.JSON(out)
}

type reportStatusInput struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateReportStatus(c *fiber.Ctx) error {
	var in reportStatusInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	// The repository stores whatever it is given; the enum check lives here.
	if !domain.ValidReportStatus(in.Status) {
		return jsonError(c, fiber.StatusBadRequest, "Invalid report status")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return notFound(c, "Report not found")
	}
	updated, err := h.Reports.UpdateStatus(id, in.Status)
	if err != nil {
		applog.Error(c, "admin.report.status.error", err, map[string]any{"report_id": id})
		return serverError(c)
	}
	if updated == nil {
		return notFound(c, "Report not found")
	}
	applog.Audit(c, "admin.report.status", map[string]any{"report_id": id, "status": in.Status})
	return c.JSON(fiber.Map{"message": "Report status updated"})
}
