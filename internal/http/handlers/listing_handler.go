package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"twostreet/internal/domain"
	applog "twostreet/internal/log"
	"twostreet/internal/repos"
	"twostreet/internal/services"
	"twostreet/internal/validate"
)

// defaultImageByCategory backs listings created without uploads.
var defaultImageByCategory = map[string]string{
	"Electronics": "https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&w=900&q=80",
	"Furniture":   "https://images.unsplash.com/photo-1505691938895-1758d7feb511?auto=format&fit=crop&w=900&q=80",
	"Books":       "https://images.unsplash.com/photo-1529148482759-b35b25c5c27e?auto=format&fit=crop&w=900&q=80",
	"Appliances":  "https://images.unsplash.com/photo-1507086182422-97bd7ca241ef?auto=format&fit=crop&w=900&q=80",
	"Others":      "https://images.unsplash.com/photo-1505751172876-fa1923c5c528?auto=format&fit=crop&w=900&q=80",
}

func defaultImage(category string) string {
	if img, ok := defaultImageByCategory[category]; ok {
		return img
	}
	return services.FallbackImage
}

type ListingHandler struct {
	Catalog   *services.CatalogService
	Listings  *repos.ListingRepo
	Users     *repos.UserRepo
	Reports   *repos.ReportRepo
	UploadDir string
}

// Search serves the catalog: all filters optional and ANDed, unknown sort
// modes fall back to newest.
func (h *ListingHandler) Search(c *fiber.Ctx) error {
	crit := services.Criteria{
		Search:    c.Query("search"),
		Category:  strings.TrimSpace(c.Query("category")),
		Condition: strings.TrimSpace(c.Query("condition")),
		Location:  c.Query("location"),
		SortBy:    c.Query("sortBy", services.SortNewest),
	}
	if raw := c.Query("minPrice"); raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			crit.MinPrice = &n
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			crit.MaxPrice = &n
		}
	}
	return c.JSON(h.Catalog.Search(crit))
}

// Detail returns one listing and counts the view.
func (h *ListingHandler) Detail(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return notFound(c, "Listing not found")
	}
	updated, err := h.Listings.IncrementClicks(id)
	if err != nil {
		applog.Error(c, "listing.clicks.error", err, map[string]any{"listing_id": id})
		return serverError(c)
	}
	if updated == nil {
		return notFound(c, "Listing not found")
	}
	return c.JSON(updated)
}

func (h *ListingHandler) Create(c *fiber.Ctx) error {
	title, okTitle := validate.Title(validate.Sanitize(c.FormValue("title")))
	description, okDesc := validate.Description(validate.Sanitize(c.FormValue("description")))
	price, okPrice := validate.Price(c.FormValue("price"))
	category := strings.TrimSpace(c.FormValue("category"))
	condition := strings.TrimSpace(c.FormValue("condition"))
	if !okTitle || !okDesc || !okPrice || category == "" || condition == "" {
		return jsonError(c, fiber.StatusBadRequest, "Please fill in all required fields")
	}
	if !domain.ValidCategory(category) || !domain.ValidCondition(condition) {
		return jsonError(c, fiber.StatusBadRequest, "Invalid category or condition")
	}

	uploaded, err := saveImages(c, h.UploadDir)
	if errors.Is(err, errBadUpload) {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		applog.Error(c, "listing.upload.error", err, nil)
		return serverError(c)
	}
	images := domain.JoinImages(uploaded)
	if images == "" {
		images = defaultImage(category)
	}

	created, err := h.Listings.Create(domain.Listing{
		UserID:      currentUserID(c),
		Title:       title,
		Description: description,
		Price:       price,
		Category:    category,
		Condition:   condition,
		Location:    validate.Sanitize(c.FormValue("location")),
		Images:      images,
	})
	if err != nil {
		applog.Error(c, "listing.create.error", err, nil)
		return serverError(c)
	}

	applog.Audit(c, "listing.created", map[string]any{"listing_id": created.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Listing created successfully",
		"id":      created.ID,
	})
}

func (h *ListingHandler) Update(c *fiber.Ctx) error {
	listing, err := h.ownListing(c)
	if err != nil || listing == nil {
		return err
	}

	up := repos.ListingUpdate{}
	if v := validate.Sanitize(c.FormValue("title")); v != "" {
		up.Title = &v
	}
	if v := validate.Sanitize(c.FormValue("description")); v != "" {
		up.Description = &v
	}
	if raw := c.FormValue("price"); raw != "" {
		price, ok := validate.Price(raw)
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "Price must be a positive number")
		}
		up.Price = &price
	}
	if v := strings.TrimSpace(c.FormValue("category")); v != "" {
		if !domain.ValidCategory(v) {
			return jsonError(c, fiber.StatusBadRequest, "Invalid category")
		}
		up.Category = &v
	}
	if v := strings.TrimSpace(c.FormValue("condition")); v != "" {
		if !domain.ValidCondition(v) {
			return jsonError(c, fiber.StatusBadRequest, "Invalid condition")
		}
		up.Condition = &v
	}
	if v := validate.Sanitize(c.FormValue("location")); v != "" {
		up.Location = &v
	}

	// Kept existing references come back comma-joined; new uploads append.
	kept := domain.Listing{Images: c.FormValue("existingImages")}.ImageList()
	uploaded, err := saveImages(c, h.UploadDir)
	if errors.Is(err, errBadUpload) {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		applog.Error(c, "listing.upload.error", err, nil)
		return serverError(c)
	}
	if all := domain.JoinImages(append(kept, uploaded...)); all != "" {
		up.Images = &all
	}

	if _, err := h.Listings.Update(listing.ID, up); err != nil {
		applog.Error(c, "listing.update.error", err, map[string]any{"listing_id": listing.ID})
		return serverError(c)
	}
	return c.JSON(fiber.Map{"message": "Listing updated successfully"})
}

func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	listing, err := h.ownListing(c)
	if err != nil || listing == nil {
		return err
	}
	if _, err := h.Listings.Delete(listing.ID); err != nil {
		applog.Error(c, "listing.delete.error", err, map[string]any{"listing_id": listing.ID})
		return serverError(c)
	}
	applog.Audit(c, "listing.deleted", map[string]any{"listing_id": listing.ID})
	return c.JSON(fiber.Map{"message": "Listing deleted successfully"})
}

func (h *ListingHandler) MarkSold(c *fiber.Ctx) error {
	listing, err := h.ownListing(c)
	if err != nil || listing == nil {
		return err
	}
	if _, err := h.Listings.MarkStatus(listing.ID, domain.ListingSold); err != nil {
		applog.Error(c, "listing.sold.error", err, map[string]any{"listing_id": listing.ID})
		return serverError(c)
	}
	return c.JSON(fiber.Map{"message": "Listing marked as sold"})
}

// SellerListings returns up to six other active listings by the same seller.
func (h *ListingHandler) SellerListings(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return notFound(c, "Listing not found")
	}
	listing := h.Listings.ByID(id)
	if listing == nil {
		return notFound(c, "Listing not found")
	}

	others := make([]domain.Listing, 0, 6)
	for _, l := range h.Listings.ByUser(listing.UserID) {
		if l.ID != listing.ID && l.Status == domain.ListingActive {
			others = append(others, l)
			if len(others) == 6 {
				break
			}
		}
	}
	return c.JSON(others)
}

type reportInput struct {
	Reason string `json:"reason"`
}

// Report files an abuse report, snapshotting the reporter's name and email so
// the record survives later account changes.
func (h *ListingHandler) Report(c *fiber.Ctx) error {
	var in reportInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	reason, ok := validate.Reason(validate.Sanitize(in.Reason))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Please provide a reason for reporting.")
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return notFound(c, "Listing not found")
	}
	listing := h.Listings.ByID(id)
	if listing == nil {
		return notFound(c, "Listing not found")
	}

	report := domain.Report{
		ListingID:  listing.ID,
		ReporterID: currentUserID(c),
		Reason:     reason,
	}
	if reporter := h.Users.ByID(report.ReporterID); reporter != nil {
		report.ReporterName = reporter.Name
		report.ReporterEmail = reporter.Email
	}
	if _, err := h.Reports.Create(report); err != nil {
		applog.Error(c, "report.create.error", err, map[string]any{"listing_id": listing.ID})
		return serverError(c)
	}

	applog.Audit(c, "report.created", map[string]any{"listing_id": listing.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Report submitted successfully"})
}

// ownListing loads the :id listing and enforces ownership. It returns
// (nil, nil) only after having written the error response.
func (h *ListingHandler) ownListing(c *fiber.Ctx) (*domain.Listing, error) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return nil, notFound(c, "Listing not found")
	}
	listing := h.Listings.ByID(id)
	if listing == nil {
		return nil, notFound(c, "Listing not found")
	}
	if listing.UserID != currentUserID(c) {
		applog.Security(c, "listing.ownership.denied", map[string]any{"listing_id": id})
		return nil, jsonError(c, fiber.StatusForbidden, "Not authorized")
	}
	return listing, nil
}
