package handlers

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/utils/storage"
	"Health-Kitchen-Backend/pkg/gemini"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var extErr *domain.ExtractionError
	var valErr *domain.ValidationError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &extErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &valErr), errors.As(err, &fieldErrs):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrMissingDocument),
		errors.Is(err, domain.ErrParseUUID),
		errors.Is(err, domain.ErrNoIngredients),
		errors.Is(err, storage.ErrFileTypeNotAllow):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRecipeNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrEmailAlreadyUsed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrRecipeAPIFailed),
		errors.Is(err, domain.ErrGeminiAPIFailed):
		return fiber.StatusBadGateway
	case errors.Is(err, domain.ErrRecipeAPINotConfig),
		errors.Is(err, gemini.ErrNotConfigured),
		errors.Is(err, storage.ErrStorageDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// validationError converts validator output to the structured form the
// presenters render.
func validationError(err error) error {
	return domain.NewValidationError("", err)
}
