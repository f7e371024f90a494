package presenter

import "github.com/gofiber/fiber/v2"

// ErrorResponse: единый формат ошибки API.
type ErrorResponse struct {
	Message string `json:"message"`
}

// JSON writes v with the given status. Generated results are per request,
// so intermediaries must not cache them.
func JSON(c *fiber.Ctx, status int, v any) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}
