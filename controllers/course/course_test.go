package courseController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"promptbase/config"
	"promptbase/database"
	"promptbase/middleware"
	"promptbase/models"
	"promptbase/routers/courseRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app, db
}

func adminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()

	admin := models.User{Name: "Admin", Email: "admin@test.dev", Role: "ADMIN", Password: "x"}
	require.NoError(t, db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func dataOf(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	return data
}

func TestListCoursesDerivesCategoryFromFirstTag(t *testing.T) {
	app, db := setupApp(t)

	tagged := models.Course{Title: "Prompting 101", Tags: datatypes.NewJSONSlice([]string{"AI", "basics"})}
	untagged := models.Course{Title: "Untagged"}
	require.NoError(t, db.Create(&tagged).Error)
	require.NoError(t, db.Create(&untagged).Error)

	resp, body := doRequest(t, app, "GET", "/api/courses/", "", nil)
	require.Equal(t, 200, resp.StatusCode)

	courses := dataOf(t, body)["courses"].([]interface{})
	require.Len(t, courses, 2)

	byTitle := make(map[string]map[string]interface{})
	for _, raw := range courses {
		course := raw.(map[string]interface{})
		byTitle[course["title"].(string)] = course
	}
	assert.Equal(t, "AI", byTitle["Prompting 101"]["category"])
	assert.Equal(t, "General", byTitle["Untagged"]["category"])
}

func TestCreateCourseDefaultsIcon(t *testing.T) {
	app, db := setupApp(t)
	token := adminToken(t, db)

	resp, body := doRequest(t, app, "POST", "/api/courses/", token, map[string]interface{}{
		"title":       "New Course",
		"description": "about things",
		"tags":        []string{"writing"},
	})
	require.Equal(t, 201, resp.StatusCode)

	course := dataOf(t, body)["course"].(map[string]interface{})
	assert.Equal(t, "📚", course["icon"])
	assert.Equal(t, "writing", course["category"])
}

func TestCreateCourseValidation(t *testing.T) {
	app, db := setupApp(t)
	token := adminToken(t, db)

	resp, _ := doRequest(t, app, "POST", "/api/courses/", token, map[string]interface{}{
		"title": "ab",
	})
	assert.Equal(t, 422, resp.StatusCode)
}

func TestCourseWritesRequireAdmin(t *testing.T) {
	app, db := setupApp(t)

	user := models.User{Name: "User", Email: "user@test.dev", Role: "USER", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "POST", "/api/courses/", token, map[string]interface{}{
		"title": "New Course", "description": "d",
	})
	assert.Equal(t, 403, resp.StatusCode)
}

func TestDeleteCourseIsSoftAndHidesFromReads(t *testing.T) {
	app, db := setupApp(t)
	token := adminToken(t, db)

	course := models.Course{Title: "Doomed", Tags: datatypes.NewJSONSlice([]string{"x"})}
	require.NoError(t, db.Create(&course).Error)

	resp, _ := doRequest(t, app, "DELETE", "/api/courses/"+course.ID, token, nil)
	require.Equal(t, 200, resp.StatusCode)

	// The row survives with the flag set.
	var fresh models.Course
	require.NoError(t, db.Unscoped().First(&fresh, "id = ?", course.ID).Error)
	assert.True(t, fresh.IsDeleted)

	resp, _ = doRequest(t, app, "GET", "/api/courses/"+course.ID, "", nil)
	assert.Equal(t, 404, resp.StatusCode)

	resp, body := doRequest(t, app, "GET", "/api/courses/", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Empty(t, dataOf(t, body)["courses"].([]interface{}))
}
