package handlers

import "github.com/gofiber/fiber/v2"

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func serverError(c *fiber.Ctx) error {
	return jsonError(c, fiber.StatusInternalServerError, "Server error")
}

func notFound(c *fiber.Ctx, msg string) error {
	return jsonError(c, fiber.StatusNotFound, msg)
}
