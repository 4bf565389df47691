package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/recipebox/recipebox-backend/internal/dto"
	"github.com/recipebox/recipebox-backend/internal/models"
	"github.com/recipebox/recipebox-backend/internal/scope"
	"github.com/recipebox/recipebox-backend/internal/services"
	"github.com/recipebox/recipebox-backend/internal/storage"
)

type RecipeHandler struct {
	recipeService *services.RecipeService
	images        *storage.ImageStore
	maxImageSize  int64
}

func NewRecipeHandler(recipeService *services.RecipeService, images *storage.ImageStore, maxImageSize int64) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		images:        images,
		maxImageSize:  maxImageSize,
	}
}

// List handles GET /recipes?tags=1,2&ingredients=3 - owner's recipes, newest
// first, optionally narrowed to those carrying any of the given tag or
// ingredient ids.
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	tagIDs, err := parseIDList(c.Query("tags"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "tags must be a comma-separated list of ids",
		})
	}
	ingredientIDs, err := parseIDList(c.Query("ingredients"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "ingredients must be a comma-separated list of ids",
		})
	}

	recipes, err := h.recipeService.List(ownerID, tagIDs, ingredientIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch recipes",
		})
	}

	resp := dto.RecipeListResponse{
		Recipes: make([]dto.RecipeResponse, len(recipes)),
		Count:   len(recipes),
	}
	for i := range recipes {
		resp.Recipes[i] = toRecipeResponse(&recipes[i])
	}
	return c.JSON(resp)
}

func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid recipe id",
		})
	}

	recipe, err := h.recipeService.Get(ownerID, id)
	if err != nil {
		return h.recipeError(c, err)
	}
	return c.JSON(toRecipeResponse(recipe))
}

func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Title and a positive time_minutes are required",
		})
	}

	recipe, err := h.recipeService.Create(ownerID, services.CreateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Description: req.Description,
		Tags:        names(req.Tags),
		Ingredients: names(req.Ingredients),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create recipe",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(toRecipeResponse(recipe))
}

// Update handles PATCH and PUT on /recipes/:id. Absent fields stay as they
// are; a present empty tags/ingredients array clears the set.
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid recipe id",
		})
	}

	var req dto.UpdateRecipeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid field values",
		})
	}

	in := services.UpdateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Description: req.Description,
	}
	if req.Tags != nil {
		t := names(*req.Tags)
		in.Tags = &t
	}
	if req.Ingredients != nil {
		ing := names(*req.Ingredients)
		in.Ingredients = &ing
	}

	recipe, err := h.recipeService.Update(ownerID, id, in)
	if err != nil {
		return h.recipeError(c, err)
	}
	return c.JSON(toRecipeResponse(recipe))
}

func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid recipe id",
		})
	}

	if err := h.recipeService.Delete(ownerID, id); err != nil {
		return h.recipeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AttachImage handles POST /recipes/:id/image - multipart upload of the
// recipe photo. The file is written first and unlinked again if the row
// update does not go through, so no image is ever recorded without its file
// and no file lingers without its record.
func (h *RecipeHandler) AttachImage(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid recipe id",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Image file is required",
		})
	}
	if file.Size > h.maxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Image is too large",
		})
	}

	contentType := file.Header.Get("Content-Type")
	validTypes := map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
	}
	if !validTypes[contentType] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid image format. Only JPEG and PNG are allowed",
		})
	}

	filename := h.images.Filename(id, file.Filename)
	diskPath := h.images.DiskPath(filename)
	if err := c.SaveFile(file, diskPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save image",
		})
	}

	publicPath := h.images.PublicPath(filename)
	previous, err := h.recipeService.SetImage(ownerID, id, publicPath)
	if err != nil {
		h.images.Remove(publicPath)
		return h.recipeError(c, err)
	}
	if previous != nil {
		h.images.Remove(*previous)
	}

	recipe, err := h.recipeService.Get(ownerID, id)
	if err != nil {
		return h.recipeError(c, err)
	}
	return c.JSON(toRecipeResponse(recipe))
}

func (h *RecipeHandler) recipeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrRecipeNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Recipe not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func toRecipeResponse(r *models.Recipe) dto.RecipeResponse {
	resp := dto.RecipeResponse{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Description: r.Description,
		Image:       r.Image,
		Tags:        make([]dto.TagResponse, len(r.Tags)),
		Ingredients: make([]dto.IngredientResponse, len(r.Ingredients)),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for i, t := range r.Tags {
		resp.Tags[i] = dto.TagResponse{ID: t.ID, Name: t.Name}
	}
	for i, ing := range r.Ingredients {
		resp.Ingredients[i] = dto.IngredientResponse{ID: ing.ID, Name: ing.Name}
	}
	return resp
}

func names(refs []dto.NameRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.Name
	}
	return out
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// parseIDList parses "1,2,3" into ids. Empty input means no filter.
func parseIDList(raw string) ([]uint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
