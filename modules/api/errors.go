package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// translateServiceError maps errors crossing the service boundary to
// HTTP responses. Service calls flatten errors to strings, so the
// mapping matches known sentinel messages.
func translateServiceError(c *fiber.Ctx, err error) error {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "rate limit exceeded"):
		return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
			Error:   "rate_limited",
			Message: "Too many requests, slow down",
		})

	case strings.Contains(msg, "invalid email or password"),
		strings.Contains(msg, "token has expired"),
		strings.Contains(msg, "token has been revoked"),
		strings.Contains(msg, "invalid token"):
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid credentials or token",
		})

	case strings.Contains(msg, "already exists"):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error:   "conflict",
			Message: "A resource with that value already exists",
		})

	case strings.Contains(msg, "not found"):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Resource not found",
		})

	case strings.Contains(msg, "is required"),
		strings.Contains(msg, "must be"),
		strings.Contains(msg, "invalid email format"),
		strings.Contains(msg, "invalid list"),
		strings.Contains(msg, "invalid target list"):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: msg,
		})

	default:
		log.Printf("[api] Internal error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}
