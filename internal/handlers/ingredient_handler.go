package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/recipebox/recipebox-backend/internal/dto"
	"github.com/recipebox/recipebox-backend/internal/scope"
	"github.com/recipebox/recipebox-backend/internal/services"
)

type IngredientHandler struct {
	ingredientService *services.IngredientService
}

func NewIngredientHandler(ingredientService *services.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// List handles GET /ingredients?assigned_only=true.
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	ingredients, err := h.ingredientService.List(ownerID, c.QueryBool("assigned_only"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch ingredients",
		})
	}

	resp := dto.IngredientListResponse{Ingredients: make([]dto.IngredientResponse, len(ingredients))}
	for i, ing := range ingredients {
		resp.Ingredients[i] = dto.IngredientResponse{ID: ing.ID, Name: ing.Name}
	}
	return c.JSON(resp)
}

func (h *IngredientHandler) Rename(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ingredient id",
		})
	}

	var req dto.RenameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Name is required",
		})
	}

	ingredient, err := h.ingredientService.Rename(ownerID, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIngredientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Ingredient not found",
			})
		case errors.Is(err, services.ErrIngredientNameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to rename ingredient",
			})
		}
	}

	return c.JSON(dto.IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}

func (h *IngredientHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ingredient id",
		})
	}

	if err := h.ingredientService.Delete(ownerID, id); err != nil {
		switch {
		case errors.Is(err, services.ErrIngredientNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Ingredient not found",
			})
		case errors.Is(err, services.ErrIngredientInUse):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to delete ingredient",
			})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
