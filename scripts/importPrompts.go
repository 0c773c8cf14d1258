package main

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	"promptbase/config"
	"promptbase/database"
	"promptbase/models"

	"gorm.io/datatypes"
)

// Bulk prompt importer. Expects prompts.csv with columns:
// title, prompt_content, category, tags, platform, style, description, image_url
func main() {
	// Load config and connect to database
	config.LoadConfig()
	database.ConnectDb()

	// Open CSV file
	file, err := os.Open("prompts.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	// Create CSV reader
	reader := csv.NewReader(file)

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	// Skip header row
	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		if i%100 == 0 {
			log.Printf("Processing row %d...", i+1)
		}

		title := getField(row, headerIndex, "title")
		content := getField(row, headerIndex, "prompt_content")

		// Skip if no title or content
		if title == "" || content == "" {
			skipped++
			continue
		}

		prompt := models.Prompt{
			Title:       title,
			Content:     content,
			Category:    getField(row, headerIndex, "category"),
			Tags:        datatypes.NewJSONSlice(parseTags(getField(row, headerIndex, "tags"))),
			Platform:    getField(row, headerIndex, "platform"),
			Style:       getField(row, headerIndex, "style"),
			Description: getField(row, headerIndex, "description"),
			ImageURL:    getField(row, headerIndex, "image_url"),
			Status:      models.PromptStatusPublished,
		}

		// Check if prompt exists by title
		var existing models.Prompt
		result := database.Database.Db.Where("title = ?", title).First(&existing)

		if result.Error != nil {
			// Insert new prompt
			if err := database.Database.Db.Create(&prompt).Error; err != nil {
				log.Printf("Error inserting prompt %q: %v", title, err)
				continue
			}
			inserted++
		} else {
			// Update existing prompt
			existing.Content = prompt.Content
			existing.Category = prompt.Category
			existing.Tags = prompt.Tags
			existing.Platform = prompt.Platform
			existing.Style = prompt.Style
			existing.Description = prompt.Description
			existing.ImageURL = prompt.ImageURL

			if err := database.Database.Db.Save(&existing).Error; err != nil {
				log.Printf("Error updating prompt %q: %v", title, err)
				continue
			}
			updated++
		}
	}

	log.Printf("Import complete. Inserted: %d, Updated: %d, Skipped: %d", inserted, updated, skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
