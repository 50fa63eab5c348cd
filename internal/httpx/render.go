// Package httpx holds the response conventions shared by every handler:
// successful bodies are wrapped in a "data" envelope, errors render as
// {"error": message} through the app-level error handler.
package httpx

import "github.com/gofiber/fiber/v2"

func Data(c *fiber.Ctx, payload any) error {
	return c.JSON(fiber.Map{"data": payload})
}

func Created(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": payload})
}

func Accepted(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"data": payload})
}
