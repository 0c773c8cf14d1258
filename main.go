package main

import (
	"log"

	"promptbase/config"
	"promptbase/database"
	authRoutes "promptbase/routers/authRoutes"
	courseRoutes "promptbase/routers/courseRoutes"
	promptRoutes "promptbase/routers/promptRoutes"
	"promptbase/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	database.SeedAll(database.Database.Db)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded thumbnails
	app.Static(config.AppConfig.UploadURL, config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	promptRoutes.SetupPromptRoutes(app)

	// Background reconciliation of denormalized prompt counters
	utils.StartCounterScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
