package promptRoutes

import (
	categoryControllers "promptbase/controllers/category"
	controllers "promptbase/controllers/prompt"
	uploadControllers "promptbase/controllers/upload"
	"promptbase/middleware"
	validators "promptbase/validators/prompt"

	"github.com/gofiber/fiber/v2"
)

// SetupPromptRoutes sets up the prompt platform routes.
func SetupPromptRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Search and detail (published prompts only)
	api.Get("/prompts", controllers.ListPrompts)

	// Saved prompts (registered before /prompts/:id so "saved" is not
	// swallowed as an id)
	api.Get("/prompts/saved", middleware.JWTMiddleware, controllers.ListSavedPrompts)
	api.Post("/prompts/saved", middleware.JWTMiddleware, validators.Save(), controllers.SavePrompt)
	api.Delete("/prompts/saved", middleware.JWTMiddleware, controllers.UnsavePrompt)

	api.Get("/prompts/:id", controllers.GetPrompt)

	// Admin-only prompt writes
	api.Post("/prompts", middleware.JWTMiddleware, middleware.AdminOnly, validators.PromptBody(), controllers.CreatePrompt)
	api.Put("/prompts/:id", middleware.JWTMiddleware, middleware.AdminOnly, validators.PromptBody(), controllers.UpdatePrompt)
	api.Delete("/prompts/:id", middleware.JWTMiddleware, middleware.AdminOnly, controllers.DeletePrompt)

	// Votes
	api.Get("/votes", middleware.JWTMiddleware, controllers.GetMyVotes)
	api.Post("/votes", middleware.JWTMiddleware, validators.Vote(), controllers.CastVote)
	api.Delete("/votes", middleware.JWTMiddleware, controllers.RemoveVote)

	// Categories
	api.Get("/categories", categoryControllers.ListCategories)

	// Thumbnail upload (admin only)
	api.Post("/upload-thumbnail", middleware.JWTMiddleware, middleware.AdminOnly, uploadControllers.UploadThumbnail)
}
