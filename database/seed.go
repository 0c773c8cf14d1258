package database

import (
	"log"

	"promptbase/config"
	"promptbase/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedAll populates starter data. Seed failures are logged and tolerated;
// a broken sample row must never abort startup.
func SeedAll(db *gorm.DB) {
	seedAdmin(db)
	seedCategories(db)
	seedCourses(db)
}

func seedAdmin(db *gorm.DB) {
	cfg := config.AppConfig
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return
	}

	var existing models.User
	if err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error; err == nil {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cfg.SaltRound)
	if err != nil {
		log.Printf("Seed: failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Name:     "Admin",
		Email:    cfg.AdminEmail,
		Role:     "ADMIN",
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Seed: failed to create admin user: %v", err)
	}
}

func seedCategories(db *gorm.DB) {
	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []models.Category{
		{Name: "Writing", Slug: "writing", SortOrder: 1},
		{Name: "Coding", Slug: "coding", SortOrder: 2},
		{Name: "Design", Slug: "design", SortOrder: 3},
		{Name: "Marketing", Slug: "marketing", SortOrder: 4},
		{Name: "Productivity", Slug: "productivity", SortOrder: 5},
	}
	for _, cat := range categories {
		if err := db.Create(&cat).Error; err != nil {
			log.Printf("Seed: failed to insert category %q: %v", cat.Name, err)
		}
	}
}

func seedCourses(db *gorm.DB) {
	var count int64
	db.Model(&models.Course{}).Count(&count)
	if count > 0 {
		return
	}

	courses := []models.Course{
		{
			Title:       "Getting Started with Prompting",
			Description: "The fundamentals of writing effective prompts.",
			Icon:        "📚",
			Content:     "# Getting Started\n\nA prompt is an instruction you give a model...",
			Tags:        datatypes.NewJSONSlice([]string{"Basics", "Writing"}),
		},
		{
			Title:       "Structured Output Techniques",
			Description: "Coaxing JSON, tables and markdown out of a model reliably.",
			Icon:        "🧩",
			Content:     "# Structured Output\n\nAsk for the shape before the content...",
			Tags:        datatypes.NewJSONSlice([]string{"Advanced", "Coding"}),
		},
		{
			Title:       "Image Prompt Composition",
			Description: "Subjects, styles and modifiers for image generation.",
			Icon:        "🎨",
			Content:     "# Image Prompts\n\nStart with the subject, then layer style...",
			Tags:        datatypes.NewJSONSlice([]string{"Design"}),
		},
	}
	for _, course := range courses {
		if err := db.Create(&course).Error; err != nil {
			log.Printf("Seed: failed to insert course %q: %v", course.Title, err)
		}
	}
}
