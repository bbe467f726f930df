package utils

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/helpdesk/internal/types"
)

// SuccessResponse sends a standard success response
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(data)
}

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusNotFound, types.ErrorTypeNotFound)
}

// BadRequestResponse sends a 400 validation error response
func BadRequestResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, message, fiber.StatusBadRequest, types.ErrorTypeValidation)
}

// ServiceErrorResponse maps a service error onto the error envelope.
// Errors that carry no status are store faults.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	ce, ok := types.AsCustomError(err)
	if !ok {
		ce = types.NewStoreFault(c.Method()+" "+c.Route().Path, err)
	}
	if ce.Code >= fiber.StatusInternalServerError {
		slog.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(), "url", c.OriginalURL(), "error", err)
	}
	return ErrorResponse(c, ce.Message, ce.Code, ce.Type)
}

// DeleteSuccessResponse sends the success marker for deletes
func DeleteSuccessResponse(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(SuccessResponseStruct{
		Message:   "Success",
		Ok:        true,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// SuccessResponseStruct defines the schema for delete and link success responses
type SuccessResponseStruct struct {
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
}
