package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"exlookup/internal/config"
	"exlookup/internal/insights"
	"exlookup/internal/middleware"
)

// ErrorHandler renders the error view for any error returned by a handler.
// Backend transport failures map to 502 Bad Gateway; the page only shows a
// generic message and the request id.
func ErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		var te *insights.TransportError
		switch {
		case errors.As(err, &fe):
			code = fe.Code
			message = fe.Message
		case errors.As(err, &te):
			code = fiber.StatusBadGateway
			message = "The telemetry service could not be reached. Please try again later."
		}

		requestID := middleware.RequestID(c)
		if code >= fiber.StatusInternalServerError {
			slog.Error("request failed", "request_id", requestID, "path", c.Path(), "status", code, "error", err)
		}

		return c.Status(code).Render("error", MergeBranding(fiber.Map{
			"Title":     "Error",
			"Message":   message,
			"RequestID": requestID,
		}, cfg))
	}
}

// ErrorPage renders the error view directly, carrying the current request id.
func ErrorPage(cfg *config.Config) fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.Render("error", MergeBranding(fiber.Map{
			"Title":     "Error",
			"Message":   "An error occurred while processing your request.",
			"RequestID": middleware.RequestID(c),
		}, cfg))
	}
}
