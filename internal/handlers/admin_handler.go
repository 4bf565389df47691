package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/recipebox/recipebox-backend/internal/dto"
	"github.com/recipebox/recipebox-backend/internal/models"
	"gorm.io/gorm"
)

// AdminHandler exposes the operator surface: recent error logs and the
// account list. Reached only through the admin middleware.
type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// ListSystemLogs handles GET /admin/logs?level=ERROR&limit=100.
func (h *AdminHandler) ListSystemLogs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	q := h.db.Model(&models.SystemLog{}).Order("timestamp DESC").Limit(limit)
	if level := c.Query("level"); level != "" {
		q = q.Where("level = ?", level)
	}

	var logs []models.SystemLog
	if err := q.Find(&logs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch logs",
		})
	}

	return c.JSON(fiber.Map{"logs": logs, "count": len(logs)})
}

// ListUsers handles GET /admin/users?page=1&limit=50.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 50)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to count users",
		})
	}

	var users []models.User
	if err := h.db.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch users",
		})
	}

	resp := make([]dto.UserResponse, len(users))
	for i, u := range users {
		resp[i] = dto.UserResponse{ID: u.ID, Email: u.Email, Name: u.Name}
	}

	return c.JSON(fiber.Map{
		"users": resp,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
