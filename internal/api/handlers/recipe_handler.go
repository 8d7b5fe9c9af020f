package handlers

import (
	"Health-Kitchen-Backend/domain"
	"Health-Kitchen-Backend/internal/api/presenters"
	"Health-Kitchen-Backend/pkg/recipe"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"strconv"
)

type (
	RecipeHandler interface {
		GetSafeRecipes(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
		GetRecommendations(c *fiber.Ctx) error
		RefineRecipes(c *fiber.Ctx) error
		AskAssistant(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		assistant     recipe.KitchenAssistant
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, assistant recipe.KitchenAssistant, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		assistant:     assistant,
		validator:     validator,
	}
}

func (h *recipeHandler) GetSafeRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	res, err := h.recipeService.GetSafeRecipes(c.Context(), userID, limit)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes":       res,
		"total_recipes": len(res),
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.SearchRecipes(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedSearchRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchRecipes)
}

func (h *recipeHandler) GetRecommendations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.recipeService.GetRecommendations(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetRecommendation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecommendation)
}

// RefineRecipes accepts an optional body; without one the user's remote
// search results are refined.
func (h *recipeHandler) RefineRecipes(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.RefineRecipesRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
		if err := h.validator.Struct(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRefineRecipes, validationError(err))
		}
	}

	res, err := h.recipeService.RefineRecipes(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedRefineRecipes, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRefineRecipes)
}

func (h *recipeHandler) AskAssistant(c *fiber.Ctx) error {
	req := new(domain.AskAssistantRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAskAssistant, validationError(err))
	}

	res, err := h.assistant.AnswerQuery(c.Context(), req.RecipeName, req.Question)
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedAskAssistant, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAskAssistant)
}
