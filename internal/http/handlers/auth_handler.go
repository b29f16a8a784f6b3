package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "twostreet/internal/log"
	"twostreet/internal/repos"
	"twostreet/internal/services"
	"twostreet/internal/validate"
)

type AuthHandler struct {
	Auth  *services.AuthService
	Users *repos.UserRepo
}

type registerInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone"`
	MatricNumber string `json:"matricNumber"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in registerInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	name, ok := validate.Name(validate.Sanitize(in.Name))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Name must be at least 2 characters")
	}
	email, ok := validate.Email(validate.Sanitize(in.Email))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Invalid email format")
	}
	if !validate.CampusEmail(email) {
		return jsonError(c, fiber.StatusBadRequest, "Please use your USM student email (@student.usm.my)")
	}
	if !validate.Password(in.Password) {
		return jsonError(c, fiber.StatusBadRequest, "Password must be at least 6 characters")
	}

	user, token, err := h.Auth.Register(name, email, in.Password,
		validate.Sanitize(in.Phone), validate.Sanitize(in.MatricNumber))
	if errors.Is(err, repos.ErrEmailTaken) {
		return jsonError(c, fiber.StatusBadRequest, "Email already registered")
	}
	if err != nil {
		applog.Error(c, "auth.register.error", err, map[string]any{"email": email})
		return serverError(c)
	}

	applog.Audit(c, "auth.register.success", map[string]any{"user_id": user.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   token,
		"user": fiber.Map{
			"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role,
		},
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in loginInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, token, err := h.Auth.Login(in.Email, in.Password)
	switch {
	case errors.Is(err, services.ErrBanned):
		applog.Security(c, "auth.login.banned", map[string]any{"email": in.Email})
		return jsonError(c, fiber.StatusForbidden, "Your account has been banned")
	case errors.Is(err, services.ErrBadCreds):
		applog.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return jsonError(c, fiber.StatusBadRequest, "Invalid credentials")
	case err != nil:
		applog.Error(c, "auth.login.error", err, nil)
		return serverError(c)
	}

	applog.Audit(c, "auth.login.success", map[string]any{"user_id": user.ID})
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role,
		},
	})
}

// Me returns the authenticated user's own record, credential stripped.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := h.Users.ByID(currentUserID(c))
	if user == nil {
		return notFound(c, "User not found")
	}
	return c.JSON(user.Public())
}
