package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"promptbase/config"
)

// SaveUploadedFile writes an uploaded thumbnail into destDir under a
// timestamped name and returns the stored filename.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Unique filename: millisecond timestamp + original name
	newFilename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	filePath := filepath.Join(destDir, newFilename)

	// Create destination file
	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return newFilename, nil
}

// GetFileURL maps a stored filename to its public URL.
func GetFileURL(filename string) string {
	if filename == "" {
		return ""
	}
	return config.AppConfig.UploadURL + "/" + filename
}
