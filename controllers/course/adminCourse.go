package courseController

import (
	"promptbase/database"
	"promptbase/middleware"
	"promptbase/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// CourseInput is the payload shared by create and update.
type CourseInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon"`
	Content      string   `json:"content"`
	VideoURL     string   `json:"videoUrl"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Tags         []string `json:"tags"`
}

// CreateCourse inserts a new course (admin only).
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*CourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	icon := reqData.Icon
	if icon == "" {
		icon = "📚"
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Icon:         icon,
		Content:      reqData.Content,
		VideoURL:     reqData.VideoURL,
		ThumbnailURL: reqData.ThumbnailURL,
		Tags:         datatypes.NewJSONSlice(reqData.Tags),
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", fiber.Map{
		"course": toCourseResponse(course),
	})
}

// UpdateCourse updates an existing course in place (admin only).
func UpdateCourse(c *fiber.Ctx) error {
	courseId := c.Params("id")

	reqData, ok := c.Locals("validatedCourse").(*CourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", courseId).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	if reqData.Icon != "" {
		course.Icon = reqData.Icon
	}
	course.Content = reqData.Content
	course.VideoURL = reqData.VideoURL
	course.ThumbnailURL = reqData.ThumbnailURL
	course.Tags = datatypes.NewJSONSlice(reqData.Tags)

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", fiber.Map{
		"course": toCourseResponse(course),
	})
}

// DeleteCourse soft-deletes a course (admin only).
func DeleteCourse(c *fiber.Ctx) error {
	courseId := c.Params("id")

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = false", courseId).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", fiber.Map{
		"success": true,
	})
}
