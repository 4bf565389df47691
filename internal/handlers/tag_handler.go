package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/recipebox/recipebox-backend/internal/dto"
	"github.com/recipebox/recipebox-backend/internal/scope"
	"github.com/recipebox/recipebox-backend/internal/services"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List handles GET /tags?assigned_only=true.
func (h *TagHandler) List(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	tags, err := h.tagService.List(ownerID, c.QueryBool("assigned_only"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch tags",
		})
	}

	resp := dto.TagListResponse{Tags: make([]dto.TagResponse, len(tags))}
	for i, t := range tags {
		resp.Tags[i] = dto.TagResponse{ID: t.ID, Name: t.Name}
	}
	return c.JSON(resp)
}

func (h *TagHandler) Rename(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tag id",
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

	tag, err := h.tagService.Rename(ownerID, id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTagNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Tag not found",
			})
		case errors.Is(err, services.ErrTagNameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to rename tag",
			})
		}
	}

	return c.JSON(dto.TagResponse{ID: tag.ID, Name: tag.Name})
}

func (h *TagHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := scope.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tag id",
		})
	}

	if err := h.tagService.Delete(ownerID, id); err != nil {
		switch {
		case errors.Is(err, services.ErrTagNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Tag not found",
			})
		case errors.Is(err, services.ErrTagInUse):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to delete tag",
			})
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}
