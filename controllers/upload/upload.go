package uploadController

import (
	"log"

	"promptbase/config"
	"promptbase/middleware"
	"promptbase/utils"

	"github.com/gofiber/fiber/v2"
)

// UploadThumbnail accepts a multipart "file" field, stores it in the
// upload directory and returns its public URL.
func UploadThumbnail(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No file provided!", nil)
	}

	filename, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving uploaded thumbnail: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Upload failed!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Upload successful!", fiber.Map{
		"url": utils.GetFileURL(filename),
	})
}
