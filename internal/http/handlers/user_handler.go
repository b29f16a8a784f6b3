package handlers

import (
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "twostreet/internal/log"
	"twostreet/internal/repos"
	"twostreet/internal/validate"
)

type UserHandler struct {
	Users    *repos.UserRepo
	Listings *repos.ListingRepo
}

func (h *UserHandler) Profile(c *fiber.Ctx) error {
	user := h.Users.ByID(currentUserID(c))
	if user == nil {
		return notFound(c, "User not found")
	}
	return c.JSON(user.Public())
}

type profileInput struct {
	Name         *string `json:"name"`
	Phone        *string `json:"phone"`
	MatricNumber *string `json:"matricNumber"`
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in profileInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	up := repos.UserUpdate{Phone: sanitized(in.Phone), MatricNumber: sanitized(in.MatricNumber)}
	if in.Name != nil {
		name, ok := validate.Name(validate.Sanitize(*in.Name))
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "Name must be at least 2 characters")
		}
		up.Name = &name
	}

	updated, err := h.Users.Update(currentUserID(c), up)
	if err != nil {
		applog.Error(c, "profile.update.error", err, nil)
		return serverError(c)
	}
	if updated == nil {
		return notFound(c, "User not found")
	}
	return c.JSON(fiber.Map{"message": "Profile updated successfully"})
}

func sanitized(s *string) *string {
	if s == nil {
		return nil
	}
	v := validate.Sanitize(*s)
	return &v
}

// MyListings returns the caller's own listings, newest first, regardless of
// status so sold items still show on the profile page.
func (h *UserHandler) MyListings(c *fiber.Ctx) error {
	listings := h.Listings.ByUser(currentUserID(c))
	sort.SliceStable(listings, func(i, j int) bool {
		ti, _ := time.Parse(time.RFC3339Nano, listings[i].CreatedAt)
		tj, _ := time.Parse(time.RFC3339Nano, listings[j].CreatedAt)
		return tj.Before(ti)
	})
	return c.JSON(listings)
}

// PublicProfile is unauthenticated seller info for the listing detail page.
func (h *UserHandler) PublicProfile(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return notFound(c, "User not found")
	}
	user := h.Users.ByID(id)
	if user == nil {
		return notFound(c, "User not found")
	}
	return c.JSON(user.Public())
}
