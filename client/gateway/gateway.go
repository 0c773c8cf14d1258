// Package gateway is the remote data gateway for the promptbase API.
// Every call returns a result or a typed *Error; nothing panics across
// the package boundary, and the client holds no list state of its own.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Kind classifies a gateway failure.
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation"
	KindUnavailable  Kind = "unavailable"
)

// Error is the typed failure returned by every gateway operation.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s (%d): %s", e.Kind, e.Status, e.Message)
}

func kindFromStatus(status int) Kind {
	switch status {
	case 401:
		return KindUnauthorized
	case 403:
		return KindForbidden
	case 404:
		return KindNotFound
	case 409:
		return KindConflict
	case 400, 422:
		return KindValidation
	default:
		return KindUnavailable
	}
}

// Prompt is the client-side prompt item shape.
type Prompt struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Platform    string   `json:"platform"`
	Style       string   `json:"style"`
	ImageURL    string   `json:"image_url"`
	Status      string   `json:"status"`
	ViewCount   int      `json:"view_count"`
	VoteCount   int      `json:"vote_count"`
	SaveCount   int      `json:"save_count"`
}

func (p Prompt) ItemTitle() string       { return p.Title }
func (p Prompt) ItemDescription() string { return p.Description }
func (p Prompt) ItemTags() []string      { return p.Tags }
func (p Prompt) ItemCategory() string    { return p.Category }

// Course is the client-side course item shape. Its category is derived
// server-side from the first tag; normalization here backstops rows that
// predate tagging.
type Course struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon"`
	Content      string   `json:"content"`
	VideoURL     string   `json:"videoUrl"`
	Category     string   `json:"category"`
	Tags         []string `json:"tags"`
	ThumbnailURL string   `json:"thumbnailUrl"`
}

func (c Course) ItemTitle() string       { return c.Title }
func (c Course) ItemDescription() string { return c.Description }
func (c Course) ItemTags() []string      { return c.Tags }
func (c Course) ItemCategory() string    { return c.Category }

func normalizeCourse(course Course) Course {
	if len(course.Tags) == 0 {
		course.Tags = []string{"General"}
	}
	if course.Category == "" {
		course.Category = course.Tags[0]
	}
	return course
}

// PromptInput is the create/update payload.
type PromptInput struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Type        string   `json:"type,omitempty"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Platform    string   `json:"platform"`
	Style       string   `json:"style"`
	ImageURL    string   `json:"image_url"`
	Status      string   `json:"status,omitempty"`
}

// CourseInput is the course create/update payload.
type CourseInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Icon         string   `json:"icon"`
	Content      string   `json:"content"`
	VideoURL     string   `json:"videoUrl"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Tags         []string `json:"tags"`
}

// SearchFilters are the prompt list parameters.
type SearchFilters struct {
	Search    string
	Type      string
	Category  string
	Platform  string
	Tags      []string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// PromptPage is one page of search results.
type PromptPage struct {
	Prompts []Prompt
	HasMore bool
}

// VoteResult is the outcome of a vote upsert or removal. VoteCount is the
// server's recomputed counter and overrides any local delta.
type VoteResult struct {
	VoteType  string
	VoteCount int
}

// SavedPromptDetails is a saved-list row joined with its prompt.
type SavedPromptDetails struct {
	PromptID   string    `json:"prompt_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Type       string    `json:"type"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags"`
	Platform   string    `json:"platform"`
	SavedAt    time.Time `json:"saved_at"`
	FolderName string    `json:"folder_name"`
	Notes      string    `json:"notes"`
}

// SavedRecord is the row returned by a save call.
type SavedRecord struct {
	PromptID   string `json:"prompt_id"`
	FolderName string `json:"folder_name"`
	Notes      string `json:"notes"`
}

// Client talks to the promptbase API.
type Client struct {
	http *resty.Client
}

// New builds a client against the given base URL.
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.http.SetAuthToken(token)
}

// envelope is the server's response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decode turns a resty response into data or a typed *Error.
func decode(resp *resty.Response, err error, out interface{}) error {
	if err != nil {
		return &Error{Kind: KindUnavailable, Message: err.Error()}
	}

	var env envelope
	if jsonErr := json.Unmarshal(resp.Body(), &env); jsonErr != nil {
		return &Error{Kind: KindUnavailable, Status: resp.StatusCode(), Message: "malformed response"}
	}

	if resp.StatusCode() >= 400 || !env.Status {
		return &Error{
			Kind:    kindFromStatus(resp.StatusCode()),
			Status:  resp.StatusCode(),
			Message: env.Message,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if jsonErr := json.Unmarshal(env.Data, out); jsonErr != nil {
			return &Error{Kind: KindUnavailable, Status: resp.StatusCode(), Message: "malformed response data"}
		}
	}
	return nil
}

// SearchPrompts lists published prompts matching the filters.
func (c *Client) SearchPrompts(ctx context.Context, f SearchFilters) (PromptPage, error) {
	req := c.http.R().SetContext(ctx)

	if f.Search != "" {
		req.SetQueryParam("search", f.Search)
	}
	if f.Type != "" {
		req.SetQueryParam("type", f.Type)
	}
	if f.Category != "" {
		req.SetQueryParam("category", f.Category)
	}
	if f.Platform != "" {
		req.SetQueryParam("platform", f.Platform)
	}
	if len(f.Tags) > 0 {
		req.SetQueryParam("tags", strings.Join(f.Tags, ","))
	}
	if f.SortBy != "" {
		req.SetQueryParam("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		req.SetQueryParam("sortOrder", f.SortOrder)
	}
	if f.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		req.SetQueryParam("offset", strconv.Itoa(f.Offset))
	}

	var data struct {
		Prompts    []Prompt `json:"prompts"`
		Pagination struct {
			HasMore bool `json:"hasMore"`
		} `json:"pagination"`
	}
	resp, err := req.Get("/api/prompts")
	if err := decode(resp, err, &data); err != nil {
		return PromptPage{}, err
	}
	return PromptPage{Prompts: data.Prompts, HasMore: data.Pagination.HasMore}, nil
}

// GetPrompt fetches one published prompt by id.
func (c *Client) GetPrompt(ctx context.Context, id string) (Prompt, error) {
	var data struct {
		Prompt Prompt `json:"prompt"`
	}
	resp, err := c.http.R().SetContext(ctx).Get("/api/prompts/" + id)
	if err := decode(resp, err, &data); err != nil {
		return Prompt{}, err
	}
	return data.Prompt, nil
}

// CreatePrompt inserts a prompt (admin token required).
func (c *Client) CreatePrompt(ctx context.Context, in PromptInput) (Prompt, error) {
	var data struct {
		Prompt Prompt `json:"prompt"`
	}
	resp, err := c.http.R().SetContext(ctx).SetBody(in).Post("/api/prompts")
	if err := decode(resp, err, &data); err != nil {
		return Prompt{}, err
	}
	return data.Prompt, nil
}

// UpdatePrompt updates a prompt by id (admin token required).
func (c *Client) UpdatePrompt(ctx context.Context, id string, in PromptInput) (Prompt, error) {
	var data struct {
		Prompt Prompt `json:"prompt"`
	}
	resp, err := c.http.R().SetContext(ctx).SetBody(in).Put("/api/prompts/" + id)
	if err := decode(resp, err, &data); err != nil {
		return Prompt{}, err
	}
	return data.Prompt, nil
}

// DeletePrompt removes a prompt by id (admin token required).
func (c *Client) DeletePrompt(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/api/prompts/" + id)
	return decode(resp, err, nil)
}

// UpsertVote casts or redirects the caller's vote on a prompt.
func (c *Client) UpsertVote(ctx context.Context, promptID, voteType string) (VoteResult, error) {
	var data struct {
		Vote struct {
			VoteType string `json:"vote_type"`
		} `json:"vote"`
		VoteCount int `json:"vote_count"`
	}
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"promptId": promptID, "voteType": voteType}).
		Post("/api/votes")
	if err := decode(resp, err, &data); err != nil {
		return VoteResult{}, err
	}
	return VoteResult{VoteType: data.Vote.VoteType, VoteCount: data.VoteCount}, nil
}

// DeleteVote removes the caller's vote and returns the fresh counter.
func (c *Client) DeleteVote(ctx context.Context, promptID string) (int, error) {
	var data struct {
		VoteCount int `json:"vote_count"`
	}
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("promptId", promptID).
		Delete("/api/votes")
	if err := decode(resp, err, &data); err != nil {
		return 0, err
	}
	return data.VoteCount, nil
}

// MyVotes fetches the caller's votes keyed by prompt id.
func (c *Client) MyVotes(ctx context.Context) (map[string]string, error) {
	var data struct {
		Votes map[string]string `json:"votes"`
	}
	resp, err := c.http.R().SetContext(ctx).Get("/api/votes")
	if err := decode(resp, err, &data); err != nil {
		return nil, err
	}
	if data.Votes == nil {
		data.Votes = make(map[string]string)
	}
	return data.Votes, nil
}

// SavePrompt saves a prompt into a folder. A duplicate save is a
// KindConflict error, never a silent success.
func (c *Client) SavePrompt(ctx context.Context, promptID, folderName, notes string) (SavedRecord, error) {
	var data struct {
		SavedPrompt SavedRecord `json:"savedPrompt"`
	}
	resp, err := c.http.R().SetContext(ctx).
		SetBody(map[string]string{"promptId": promptID, "folder_name": folderName, "notes": notes}).
		Post("/api/prompts/saved")
	if err := decode(resp, err, &data); err != nil {
		return SavedRecord{}, err
	}
	return data.SavedPrompt, nil
}

// UnsavePrompt removes a prompt from the caller's saved set.
func (c *Client) UnsavePrompt(ctx context.Context, promptID string) error {
	resp, err := c.http.R().SetContext(ctx).
		SetQueryParam("promptId", promptID).
		Delete("/api/prompts/saved")
	return decode(resp, err, nil)
}

// MySavedPrompts fetches the caller's saved prompts with details.
func (c *Client) MySavedPrompts(ctx context.Context) ([]SavedPromptDetails, error) {
	var data struct {
		SavedPrompts []SavedPromptDetails `json:"savedPrompts"`
	}
	resp, err := c.http.R().SetContext(ctx).Get("/api/prompts/saved")
	if err := decode(resp, err, &data); err != nil {
		return nil, err
	}
	return data.SavedPrompts, nil
}

// ListCourses lists all courses, normalized into the client shape.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var data struct {
		Courses []Course `json:"courses"`
	}
	resp, err := c.http.R().SetContext(ctx).Get("/api/courses")
	if err := decode(resp, err, &data); err != nil {
		return nil, err
	}
	for i, course := range data.Courses {
		data.Courses[i] = normalizeCourse(course)
	}
	return data.Courses, nil
}

// CreateCourse inserts a course (admin token required).
func (c *Client) CreateCourse(ctx context.Context, in CourseInput) (Course, error) {
	var data struct {
		Course Course `json:"course"`
	}
	resp, err := c.http.R().SetContext(ctx).SetBody(in).Post("/api/courses")
	if err := decode(resp, err, &data); err != nil {
		return Course{}, err
	}
	return normalizeCourse(data.Course), nil
}

// UpdateCourse updates a course by id (admin token required).
func (c *Client) UpdateCourse(ctx context.Context, id string, in CourseInput) (Course, error) {
	var data struct {
		Course Course `json:"course"`
	}
	resp, err := c.http.R().SetContext(ctx).SetBody(in).Put("/api/courses/" + id)
	if err := decode(resp, err, &data); err != nil {
		return Course{}, err
	}
	return normalizeCourse(data.Course), nil
}

// DeleteCourse removes a course by id (admin token required).
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/api/courses/" + id)
	return decode(resp, err, nil)
}

// UploadThumbnail streams a file to the thumbnail endpoint and returns
// the public URL of the stored copy.
func (c *Client) UploadThumbnail(ctx context.Context, filename string, r io.Reader) (string, error) {
	var data struct {
		URL string `json:"url"`
	}
	resp, err := c.http.R().SetContext(ctx).
		SetFileReader("file", filename, r).
		Post("/api/upload-thumbnail")
	if err := decode(resp, err, &data); err != nil {
		return "", err
	}
	return data.URL, nil
}
