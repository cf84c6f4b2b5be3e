package apperror

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Error is the application error type every controller returns. The fiber
// error handler maps it to a JSON response with the right status code.
type Error struct {
	Status  int                 `json:"-"`
	Message string              `json:"error"`
	Fields  map[string][]string `json:"errors,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound means the row does not exist at all.
func NotFound(resource string) *Error {
	return &Error{Status: http.StatusNotFound, Message: resource + " not found"}
}

// Forbidden means the row exists but belongs to another user.
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// Conflict means a unique constraint was violated, e.g. a duplicate email.
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Reference means a foreign key target is missing or not owned by the caller.
func Reference(message string) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Validation carries every violated field at once, keyed by field name.
func Validation(fields map[string][]string) *Error {
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Message: "The given data was invalid.",
		Fields:  fields,
	}
}

// ErrorHandler is installed as the fiber app ErrorHandler. Unknown errors are
// logged and rendered as a generic 500 so internals never leak to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		if len(appErr.Fields) > 0 {
			return c.Status(appErr.Status).JSON(fiber.Map{
				"message": appErr.Message,
				"errors":  appErr.Fields,
			})
		}
		return c.Status(appErr.Status).JSON(fiber.Map{"error": appErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
