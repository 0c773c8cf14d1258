package courseController

import (
	"promptbase/database"
	"promptbase/middleware"
	"promptbase/models"

	"github.com/gofiber/fiber/v2"
)

// CourseResponse is the public course shape. The category field is derived
// from the first tag; courses have no category column of their own.
type CourseResponse struct {
	models.Course
	Category string `json:"category"`
}

func toCourseResponse(course models.Course) CourseResponse {
	return CourseResponse{Course: course, Category: course.Category()}
}

// ListCourses returns all courses, most recently touched first.
func ListCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("is_deleted = false").
		Order("updated_at desc").
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		response = append(response, toCourseResponse(course))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": response,
	})
}

// GetCourse returns a single course by id.
func GetCourse(c *fiber.Ctx) error {
	courseId := c.Params("id")

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", courseId).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course": toCourseResponse(course),
	})
}
