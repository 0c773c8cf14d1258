package courseRoutes

import (
	controllers "promptbase/controllers/course"
	"promptbase/middleware"
	validators "promptbase/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the course CMS routes. Reads are public;
// writes require an admin account.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	courseGroup.Get("/", controllers.ListCourses)
	courseGroup.Get("/:id", controllers.GetCourse)

	courseGroup.Post("/", middleware.JWTMiddleware, middleware.AdminOnly, validators.CourseBody(), controllers.CreateCourse)
	courseGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.CourseBody(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminOnly, controllers.DeleteCourse)
}
