package handlers

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/api/presenters"
	"Health-Kitchen-Backend/pkg/extraction"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ExtractionHandler interface {
		ExtractMedicalRecord(c *fiber.Ctx) error
		IdentifyIngredients(c *fiber.Ctx) error
		GetScans(c *fiber.Ctx) error
	}

	extractionHandler struct {
		extractionService extraction.ExtractionService
		validator         *validator.Validate
	}
)

func NewExtractionHandler(extractionService extraction.ExtractionService, validator *validator.Validate) ExtractionHandler {
	return &extractionHandler{
		extractionService: extractionService,
		validator:         validator,
	}
}

func (h *extractionHandler) ExtractMedicalRecord(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.ExtractMedicalRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExtractMedical, validationError(err))
	}

	res, err := h.extractionService.ExtractMedicalRecord(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedExtractMedical, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessExtractMedical)
}

func (h *extractionHandler) IdentifyIngredients(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.extractionService.IdentifyIngredients(c.Context(), domain.IdentifyIngredientsRequest{Image: image}, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedExtractIngredients, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessExtractIngredients)
}

func (h *extractionHandler) GetScans(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.extractionService.GetScans(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetScans, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScans)
}
