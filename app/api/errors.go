package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps typed errors to JSON responses; anything unexpected
// becomes a plain 500 so no fault ever reaches the transport layer raw.
func ErrorHandler(c *fiber.Ctx, err error) error {
	switch e := err.(type) {
	case Error:
		return c.Status(e.Code).JSON(e)
	case ValidationError:
		return c.Status(e.Status).JSON(e)
	case *fiber.Error:
		apiError := NewError(e.Code, e.Message)
		return c.Status(apiError.Code).JSON(apiError)
	default:
		apiError := NewError(fiber.StatusInternalServerError, err.Error())
		slog.Default().Error("[HTTP] request failed", "code", apiError.Code, "message", apiError.Message)
		return c.Status(apiError.Code).JSON(apiError)
	}
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid JSON request",
	}
}

func ErrInternal(msg string) Error {
	return Error{
		Code:    fiber.StatusInternalServerError,
		Message: msg,
	}
}
