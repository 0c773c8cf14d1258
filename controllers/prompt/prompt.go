package promptController

import (
	"strings"

	"promptbase/database"
	"promptbase/middleware"
	"promptbase/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"created_at": "created_at",
	"vote_count": "vote_count",
	"view_count": "view_count",
	"save_count": "save_count",
}

// tagsColumn returns the tags expression usable inside LOWER(...) LIKE.
// On postgres the column migrates to JSONB, which has no lower(), so it
// has to be cast to text first; sqlite stores it as plain text.
func tagsColumn(dialect string) string {
	if dialect == "postgres" {
		return "tags::text"
	}
	return "tags"
}

// ListPrompts searches published prompts with the full filter set:
// free-text search, type, category, platform, tags, sorting and
// limit/offset pagination.
func ListPrompts(c *fiber.Ctx) error {
	search := c.Query("search")
	promptType := c.Query("type")
	category := c.Query("category")
	platform := c.Query("platform")
	tagsParam := c.Query("tags")
	sortBy := c.Query("sortBy", "created_at")
	sortOrder := c.Query("sortOrder", "desc")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	db := database.Database.Db
	tagsCol := tagsColumn(db.Dialector.Name())

	query := db.Model(&models.Prompt{}).Where("status = ?", models.PromptStatusPublished)

	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(content) LIKE ? OR LOWER("+tagsCol+") LIKE ?",
			term, term, term, term,
		)
	}
	if promptType != "" {
		query = query.Where("type = ?", promptType)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	if tagsParam != "" {
		// Match prompts carrying any of the requested tags. Tags are stored
		// as a JSON array, so containment is a quoted-substring match.
		var tagConds []string
		var tagArgs []interface{}
		for _, tag := range strings.Split(tagsParam, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			tagConds = append(tagConds, "LOWER("+tagsCol+") LIKE ?")
			tagArgs = append(tagArgs, "%\""+strings.ToLower(tag)+"\"%")
		}
		if len(tagConds) > 0 {
			query = query.Where(strings.Join(tagConds, " OR "), tagArgs...)
		}
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	direction := "desc"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "asc"
	}

	var prompts []models.Prompt
	if err := query.Order(column + " " + direction).
		Offset(offset).Limit(limit).
		Find(&prompts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch prompts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Prompts fetched successfully!", fiber.Map{
		"prompts": prompts,
		"pagination": fiber.Map{
			"limit":   limit,
			"offset":  offset,
			"hasMore": len(prompts) == limit,
		},
	})
}

// GetPrompt returns a single published prompt and records the view.
func GetPrompt(c *fiber.Ctx) error {
	promptId := c.Params("id")

	db := database.Database.Db

	var prompt models.Prompt
	if err := db.Where("id = ? AND status = ?", promptId, models.PromptStatusPublished).First(&prompt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Prompt not found!", nil)
	}

	// Record the view. A failed view write is not worth failing the read.
	userId, _ := c.Locals("userId").(uint)
	view := models.PromptView{PromptID: prompt.ID, UserID: userId}
	if err := db.Create(&view).Error; err == nil {
		db.Model(&prompt).Update("view_count", gorm.Expr("view_count + 1"))
		prompt.ViewCount++
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Prompt fetched successfully!", fiber.Map{
		"prompt": prompt,
	})
}
