package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/maplink/internal/core/usecases"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // bad_request, not_found, payload_too_large, unrepresentable, internal_error
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

// errPayloadTooLarge returns a 413 error.
func errPayloadTooLarge(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusRequestEntityTooLarge, "payload_too_large", msg)
}

// errUnrepresentable returns a 422 error for results JSON cannot carry.
func errUnrepresentable(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusUnprocessableEntity, "unrepresentable", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}

// errFromService maps usecase errors onto API errors.
func errFromService(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecases.ErrTextTooLarge):
		return errPayloadTooLarge(c, err.Error())
	case errors.Is(err, usecases.ErrSampleNotFound):
		return errNotFound(c, "sample not found")
	default:
		LoggerFromCtx(c.UserContext()).Error("request failed", "error", err)
		return errInternal(c, "internal error")
	}
}

// sendJSON marshals v up front so a value encoding/json rejects, such as a
// coordinate past float64 range, becomes an APIError instead of a bare 500.
func sendJSON(c *fiber.Ctx, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		LoggerFromCtx(c.UserContext()).Warn("response not representable as JSON", "error", err)
		return errUnrepresentable(c, "result contains a number outside the JSON range")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}
