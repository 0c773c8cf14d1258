package promptController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"promptbase/config"
	"promptbase/database"
	"promptbase/middleware"
	"promptbase/models"
	"promptbase/routers/promptRoutes"

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
	promptRoutes.SetupPromptRoutes(app)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, email, role string) (models.User, string) {
	t.Helper()

	user := models.User{Name: "Tester", Email: email, Role: role, Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createPrompt(t *testing.T, db *gorm.DB, p models.Prompt) models.Prompt {
	t.Helper()
	if p.Status == "" {
		p.Status = models.PromptStatusPublished
	}
	if p.Type == "" {
		p.Type = models.PromptTypeText
	}
	require.NoError(t, db.Create(&p).Error)
	return p
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

func TestListPromptsExcludesDrafts(t *testing.T) {
	app, db := setupApp(t)

	createPrompt(t, db, models.Prompt{Title: "Published one", Content: "c"})
	createPrompt(t, db, models.Prompt{Title: "Hidden draft", Content: "c", Status: models.PromptStatusDraft})
	createPrompt(t, db, models.Prompt{Title: "Archived", Content: "c", Status: models.PromptStatusArchived})

	resp, body := doRequest(t, app, "GET", "/api/prompts", "", nil)
	require.Equal(t, 200, resp.StatusCode)

	prompts := dataOf(t, body)["prompts"].([]interface{})
	require.Len(t, prompts, 1)
	assert.Equal(t, "Published one", prompts[0].(map[string]interface{})["title"])
}

func TestListPromptsSearchAndFilters(t *testing.T) {
	app, db := setupApp(t)

	createPrompt(t, db, models.Prompt{
		Title: "Blog Outline", Content: "write a blog outline",
		Category: "writing", Platform: "chatgpt",
		Tags: datatypes.NewJSONSlice([]string{"writing", "blogging"}),
	})
	createPrompt(t, db, models.Prompt{
		Title: "Logo Ideas", Content: "sketch logo ideas",
		Category: "design", Platform: "midjourney",
		Type: models.PromptTypeImage,
		Tags: datatypes.NewJSONSlice([]string{"design"}),
	})

	resp, body := doRequest(t, app, "GET", "/api/prompts?search=BLOG", "", nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Len(t, dataOf(t, body)["prompts"].([]interface{}), 1)

	_, body = doRequest(t, app, "GET", "/api/prompts?type=image", "", nil)
	prompts := dataOf(t, body)["prompts"].([]interface{})
	require.Len(t, prompts, 1)
	assert.Equal(t, "Logo Ideas", prompts[0].(map[string]interface{})["title"])

	_, body = doRequest(t, app, "GET", "/api/prompts?category=writing", "", nil)
	assert.Len(t, dataOf(t, body)["prompts"].([]interface{}), 1)

	_, body = doRequest(t, app, "GET", "/api/prompts?platform=midjourney", "", nil)
	assert.Len(t, dataOf(t, body)["prompts"].([]interface{}), 1)

	// Any-of tag match
	_, body = doRequest(t, app, "GET", "/api/prompts?tags=blogging,design", "", nil)
	assert.Len(t, dataOf(t, body)["prompts"].([]interface{}), 2)
}

func TestListPromptsPagination(t *testing.T) {
	app, db := setupApp(t)

	for i := 0; i < 5; i++ {
		createPrompt(t, db, models.Prompt{Title: fmt.Sprintf("Prompt %d", i), Content: "c"})
	}

	_, body := doRequest(t, app, "GET", "/api/prompts?limit=2&offset=0", "", nil)
	data := dataOf(t, body)
	assert.Len(t, data["prompts"].([]interface{}), 2)
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, true, pagination["hasMore"])

	_, body = doRequest(t, app, "GET", "/api/prompts?limit=2&offset=4", "", nil)
	data = dataOf(t, body)
	assert.Len(t, data["prompts"].([]interface{}), 1)
	pagination = data["pagination"].(map[string]interface{})
	assert.Equal(t, false, pagination["hasMore"])
}

func TestGetPromptIncrementsViewCount(t *testing.T) {
	app, db := setupApp(t)
	prompt := createPrompt(t, db, models.Prompt{Title: "Viewed", Content: "c"})

	resp, body := doRequest(t, app, "GET", "/api/prompts/"+prompt.ID, "", nil)
	require.Equal(t, 200, resp.StatusCode)

	got := dataOf(t, body)["prompt"].(map[string]interface{})
	assert.Equal(t, float64(1), got["view_count"])

	doRequest(t, app, "GET", "/api/prompts/"+prompt.ID, "", nil)

	var fresh models.Prompt
	require.NoError(t, db.First(&fresh, "id = ?", prompt.ID).Error)
	assert.Equal(t, 2, fresh.ViewCount)

	var views int64
	db.Model(&models.PromptView{}).Where("prompt_id = ?", prompt.ID).Count(&views)
	assert.EqualValues(t, 2, views)
}

func TestGetPromptDraftIsNotFound(t *testing.T) {
	app, db := setupApp(t)
	draft := createPrompt(t, db, models.Prompt{Title: "Draft", Content: "c", Status: models.PromptStatusDraft})

	resp, _ := doRequest(t, app, "GET", "/api/prompts/"+draft.ID, "", nil)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestCastVoteUpsertAndRecount(t *testing.T) {
	app, db := setupApp(t)
	prompt := createPrompt(t, db, models.Prompt{Title: "Voted", Content: "c"})

	_, tokenA := createUser(t, db, "a@test.dev", "USER")
	_, tokenB := createUser(t, db, "b@test.dev", "USER")

	resp, body := doRequest(t, app, "POST", "/api/votes", tokenA,
		map[string]string{"promptId": prompt.ID, "voteType": "up"})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(1), dataOf(t, body)["vote_count"])

	// Second user votes up: 2
	_, body = doRequest(t, app, "POST", "/api/votes", tokenB,
		map[string]string{"promptId": prompt.ID, "voteType": "up"})
	assert.Equal(t, float64(2), dataOf(t, body)["vote_count"])

	// First user flips to down: up=1, down=1 -> 0, and still one row per user
	_, body = doRequest(t, app, "POST", "/api/votes", tokenA,
		map[string]string{"promptId": prompt.ID, "voteType": "down"})
	assert.Equal(t, float64(0), dataOf(t, body)["vote_count"])

	var rows int64
	db.Model(&models.PromptVote{}).Where("prompt_id = ?", prompt.ID).Count(&rows)
	assert.EqualValues(t, 2, rows)

	var fresh models.Prompt
	require.NoError(t, db.First(&fresh, "id = ?", prompt.ID).Error)
	assert.Equal(t, 0, fresh.VoteCount)
}

func TestRemoveVoteAllowsRevote(t *testing.T) {
	app, db := setupApp(t)
	prompt := createPrompt(t, db, models.Prompt{Title: "Voted", Content: "c"})
	_, token := createUser(t, db, "a@test.dev", "USER")

	doRequest(t, app, "POST", "/api/votes", token,
		map[string]string{"promptId": prompt.ID, "voteType": "up"})

	resp, body := doRequest(t, app, "DELETE", "/api/votes?promptId="+prompt.ID, token, nil)
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(0), dataOf(t, body)["vote_count"])

	// The unique (user, prompt) pair must be free again.
	resp, body = doRequest(t, app, "POST", "/api/votes", token,
		map[string]string{"promptId": prompt.ID, "voteType": "down"})
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, float64(-1), dataOf(t, body)["vote_count"])
}

func TestGetMyVotesKeyedByPrompt(t *testing.T) {
	app, db := setupApp(t)
	p1 := createPrompt(t, db, models.Prompt{Title: "One", Content: "c"})
	p2 := createPrompt(t, db, models.Prompt{Title: "Two", Content: "c"})
	_, token := createUser(t, db, "a@test.dev", "USER")

	doRequest(t, app, "POST", "/api/votes", token, map[string]string{"promptId": p1.ID, "voteType": "up"})
	doRequest(t, app, "POST", "/api/votes", token, map[string]string{"promptId": p2.ID, "voteType": "down"})

	resp, body := doRequest(t, app, "GET", "/api/votes", token, nil)
	require.Equal(t, 200, resp.StatusCode)

	votes := dataOf(t, body)["votes"].(map[string]interface{})
	assert.Equal(t, "up", votes[p1.ID])
	assert.Equal(t, "down", votes[p2.ID])
}

func TestVoteValidation(t *testing.T) {
	app, db := setupApp(t)
	_, token := createUser(t, db, "a@test.dev", "USER")

	resp, _ := doRequest(t, app, "POST", "/api/votes", token,
		map[string]string{"promptId": "", "voteType": "sideways"})
	assert.Equal(t, 422, resp.StatusCode)
}

func TestVoteRequiresAuth(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doRequest(t, app, "POST", "/api/votes", "",
		map[string]string{"promptId": "p1", "voteType": "up"})
	assert.Equal(t, 401, resp.StatusCode)
}

func TestVoteOnDraftIsNotFound(t *testing.T) {
	app, db := setupApp(t)
	draft := createPrompt(t, db, models.Prompt{Title: "Draft", Content: "c", Status: models.PromptStatusDraft})
	_, token := createUser(t, db, "a@test.dev", "USER")

	resp, _ := doRequest(t, app, "POST", "/api/votes", token,
		map[string]string{"promptId": draft.ID, "voteType": "up"})
	assert.Equal(t, 404, resp.StatusCode)
}

func TestSaveThenDuplicateConflictThenUnsave(t *testing.T) {
	app, db := setupApp(t)
	prompt := createPrompt(t, db, models.Prompt{Title: "Saved", Content: "c"})
	_, token := createUser(t, db, "a@test.dev", "USER")

	resp, body := doRequest(t, app, "POST", "/api/prompts/saved", token,
		map[string]string{"promptId": prompt.ID})
	require.Equal(t, 201, resp.StatusCode)
	saved := dataOf(t, body)["savedPrompt"].(map[string]interface{})
	assert.Equal(t, "general", saved["folder_name"])

	resp, _ = doRequest(t, app, "POST", "/api/prompts/saved", token,
		map[string]string{"promptId": prompt.ID})
	assert.Equal(t, 409, resp.StatusCode)

	var fresh models.Prompt
	require.NoError(t, db.First(&fresh, "id = ?", prompt.ID).Error)
	assert.Equal(t, 1, fresh.SaveCount)

	resp, _ = doRequest(t, app, "DELETE", "/api/prompts/saved?promptId="+prompt.ID, token, nil)
	require.Equal(t, 200, resp.StatusCode)

	require.NoError(t, db.First(&fresh, "id = ?", prompt.ID).Error)
	assert.Equal(t, 0, fresh.SaveCount)

	// Re-save after unsave works (hard delete freed the unique pair).
	resp, _ = doRequest(t, app, "POST", "/api/prompts/saved", token,
		map[string]string{"promptId": prompt.ID, "folder_name": "favorites"})
	assert.Equal(t, 201, resp.StatusCode)
}

func TestListSavedPromptsJoinsDetails(t *testing.T) {
	app, db := setupApp(t)
	prompt := createPrompt(t, db, models.Prompt{
		Title: "Saved", Content: "body", Category: "writing",
		Tags: datatypes.NewJSONSlice([]string{"writing"}),
	})
	_, token := createUser(t, db, "a@test.dev", "USER")

	doRequest(t, app, "POST", "/api/prompts/saved", token,
		map[string]string{"promptId": prompt.ID, "folder_name": "work", "notes": "use later"})

	resp, body := doRequest(t, app, "GET", "/api/prompts/saved", token, nil)
	require.Equal(t, 200, resp.StatusCode)

	rows := dataOf(t, body)["savedPrompts"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, prompt.ID, row["prompt_id"])
	assert.Equal(t, "Saved", row["title"])
	assert.Equal(t, "work", row["folder_name"])
	assert.Equal(t, "use later", row["notes"])
}

func TestAdminPromptWritesRequireAdminRole(t *testing.T) {
	app, db := setupApp(t)
	_, userToken := createUser(t, db, "user@test.dev", "USER")

	payload := map[string]interface{}{"title": "New Prompt", "content": "body"}

	resp, _ := doRequest(t, app, "POST", "/api/prompts", userToken, payload)
	assert.Equal(t, 403, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST", "/api/prompts", "", payload)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestCreatePromptAsAdmin(t *testing.T) {
	app, db := setupApp(t)
	_, adminToken := createUser(t, db, "admin@test.dev", "ADMIN")

	resp, body := doRequest(t, app, "POST", "/api/prompts", adminToken, map[string]interface{}{
		"title":    "New Prompt",
		"content":  "body",
		"category": "writing",
		"tags":     []string{"writing"},
	})
	require.Equal(t, 201, resp.StatusCode)

	created := dataOf(t, body)["prompt"].(map[string]interface{})
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "text", created["type"], "type defaults to text")
	assert.Equal(t, "published", created["status"], "status defaults to published")
}

func TestCreatePromptValidation(t *testing.T) {
	app, db := setupApp(t)
	_, adminToken := createUser(t, db, "admin@test.dev", "ADMIN")

	// Title too short and content missing
	resp, _ := doRequest(t, app, "POST", "/api/prompts", adminToken, map[string]interface{}{
		"title": "ab",
	})
	assert.Equal(t, 422, resp.StatusCode)

	resp, _ = doRequest(t, app, "POST", "/api/prompts", adminToken, map[string]interface{}{
		"title": "Valid Title", "content": "body", "type": "hologram",
	})
	assert.Equal(t, 422, resp.StatusCode)
}

func TestUpdatePromptAsAdmin(t *testing.T) {
	app, db := setupApp(t)
	prompt := createPrompt(t, db, models.Prompt{Title: "Before", Content: "c"})
	_, adminToken := createUser(t, db, "admin@test.dev", "ADMIN")

	resp, body := doRequest(t, app, "PUT", "/api/prompts/"+prompt.ID, adminToken, map[string]interface{}{
		"title": "After", "content": "c2", "status": "draft",
	})
	require.Equal(t, 200, resp.StatusCode)

	updated := dataOf(t, body)["prompt"].(map[string]interface{})
	assert.Equal(t, "After", updated["title"])
	assert.Equal(t, "draft", updated["status"])
}

func TestDeletePromptCascadesRelations(t *testing.T) {
	app, db := setupApp(t)
	prompt := createPrompt(t, db, models.Prompt{Title: "Doomed", Content: "c"})

	_, userToken := createUser(t, db, "user@test.dev", "USER")
	_, adminToken := createUser(t, db, "admin@test.dev", "ADMIN")

	doRequest(t, app, "POST", "/api/votes", userToken,
		map[string]string{"promptId": prompt.ID, "voteType": "up"})
	doRequest(t, app, "POST", "/api/prompts/saved", userToken,
		map[string]string{"promptId": prompt.ID})
	doRequest(t, app, "GET", "/api/prompts/"+prompt.ID, "", nil)

	resp, _ := doRequest(t, app, "DELETE", "/api/prompts/"+prompt.ID, adminToken, nil)
	require.Equal(t, 200, resp.StatusCode)

	var count int64
	db.Model(&models.PromptVote{}).Where("prompt_id = ?", prompt.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.SavedPrompt{}).Where("prompt_id = ?", prompt.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.PromptView{}).Where("prompt_id = ?", prompt.ID).Count(&count)
	assert.Zero(t, count)

	resp, _ = doRequest(t, app, "GET", "/api/prompts/"+prompt.ID, "", nil)
	assert.Equal(t, 404, resp.StatusCode)
}
