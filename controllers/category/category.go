package categoryController

import (
	"promptbase/database"
	"promptbase/middleware"
	"promptbase/models"

	"github.com/gofiber/fiber/v2"
)

// ListCategories returns all categories in display order.
func ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := database.Database.Db.Order("sort_order").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched!", fiber.Map{
		"categories": categories,
	})
}
