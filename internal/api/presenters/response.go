package presenters

import (
	"Health-Kitchen-Backend/domain"
	"errors"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes err as a string, except extraction and validation
// errors which keep their structured form.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}

	var extErr *domain.ExtractionError
	var valErr *domain.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &extErr):
		res.Error = extErr
	case errors.As(err, &valErr):
		res.Error = fiber.Map{"field": valErr.Field, "reason": valErr.Reason}
	default:
		res.Error = err.Error()
	}

	return c.Status(statusCode).JSON(res)
}
