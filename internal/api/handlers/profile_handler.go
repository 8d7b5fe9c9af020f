package handlers

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/api/presenters"
	"Health-Kitchen-Backend/pkg/profile"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProfileHandler interface {
		BuildProfile(c *fiber.Ctx) error
		GetProfile(c *fiber.Ctx) error
		GetSplit(c *fiber.Ctx) error
	}

	profileHandler struct {
		profileService profile.ProfileService
		validator      *validator.Validate
	}
)

func NewProfileHandler(profileService profile.ProfileService, validator *validator.Validate) ProfileHandler {
	return &profileHandler{
		profileService: profileService,
		validator:      validator,
	}
}

func (h *profileHandler) BuildProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.BuildProfileRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBuildProfile, validationError(err))
	}

	res, err := h.profileService.BuildProfile(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedBuildProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessBuildProfile)
}

func (h *profileHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.profileService.GetProfile(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *profileHandler) GetSplit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.profileService.GetSplit(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSplitProfile, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSplitProfile)
}
