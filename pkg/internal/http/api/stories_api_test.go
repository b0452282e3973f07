package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/devtales-app/backend/pkg/internal/auth"
	"github.com/devtales-app/backend/pkg/internal/database"
	localHttp "github.com/devtales-app/backend/pkg/internal/http"
	"github.com/devtales-app/backend/pkg/internal/media"
	"github.com/devtales-app/backend/pkg/internal/models"
	"github.com/devtales-app/backend/pkg/internal/testutil"
)

const testSecret = "test-secret"

func setupTestApp(t *testing.T) (*fiber.App, *media.MemoryHost) {
	t.Helper()

	testutil.NewTestDatabase(t)
	testutil.NewTestCache(t)

	host := media.NewMemoryHost()
	media.H = host

	reader, err := auth.NewTokenReader(testSecret)
	if err != nil {
		t.Fatalf("unable to set up token reader: %v", err)
	}
	localHttp.IReader = reader

	return localHttp.NewServer().Fiber(), host
}

func storyForm(t *testing.T, fields map[string]string, files map[string][]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("unable to write form field: %v", err)
		}
	}
	for field, names := range files {
		for _, name := range names {
			part, err := writer.CreateFormFile(field, name)
			if err != nil {
				t.Fatalf("unable to write form file: %v", err)
			}
			fmt.Fprint(part, "media-bytes")
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("unable to close form: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func doRequest(t *testing.T, app *fiber.App, method, target, token string, body io.Reader, contentType string) *nethttp.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	if len(contentType) > 0 {
		req.Header.Set(fiber.HeaderContentType, contentType)
	}
	if len(token) > 0 {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, target, err)
	}

	return resp
}

func decodeStory(t *testing.T, resp *nethttp.Response) models.Story {
	t.Helper()

	var story models.Story
	if err := json.NewDecoder(resp.Body).Decode(&story); err != nil {
		t.Fatalf("unable to decode story response: %v", err)
	}
	return story
}

func TestStoryLifecycle(t *testing.T) {
	app, host := setupTestApp(t)
	token := testutil.SignTestToken(t, testSecret, "idp_u1", "alice")

	body, contentType := storyForm(t, map[string]string{
		"title":    "A",
		"content":  "B",
		"category": "Epic",
	}, map[string][]string{
		"images": {"one.png", "two.png"},
		"audio":  {"reading.mp3"},
	})

	resp := doRequest(t, app, "POST", "/api/stories", token, body, contentType)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("got status %d, want 201", resp.StatusCode)
	}

	created := decodeStory(t, resp)
	if created.Title != "A" || created.Content != "B" || created.Category != "Epic" {
		t.Fatalf("got story %+v, want the submitted fields back", created)
	}
	if len(created.Likes) != 0 || len(created.Bookmarks) != 0 || len(created.Comments) != 0 {
		t.Fatal("a fresh story should have empty likes, bookmarks and comments")
	}
	if len(created.ImageURLs) != 2 || created.AudioURL == nil {
		t.Fatalf("got %d image urls and audio %v, want 2 and a url", len(created.ImageURLs), created.AudioURL)
	}
	if _, ok := host.Get(created.ImageURLs[0]); !ok {
		t.Fatal("image url should resolve on the media host")
	}

	// Round trip through the public getter
	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/stories/%d", created.ID), "", nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
	fetched := decodeStory(t, resp)
	if fetched.ID != created.ID || fetched.Title != "A" {
		t.Fatalf("got story %+v, want the created one", fetched)
	}

	// Author deletes, then the story is gone
	resp = doRequest(t, app, "DELETE", fmt.Sprintf("/api/stories/%d", created.ID), token, nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}
	resp = doRequest(t, app, "GET", fmt.Sprintf("/api/stories/%d", created.ID), "", nil, "")
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("got status %d after delete, want 404", resp.StatusCode)
	}
}

func TestStoryValidationAndAuth(t *testing.T) {
	app, _ := setupTestApp(t)
	token := testutil.SignTestToken(t, testSecret, "idp_u1", "alice")

	t.Run("missing token yields 401", func(t *testing.T) {
		body, contentType := storyForm(t, map[string]string{
			"title": "A", "content": "B", "category": "Epic",
		}, nil)

		resp := doRequest(t, app, "POST", "/api/stories", "", body, contentType)
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("got status %d, want 401", resp.StatusCode)
		}
	})

	t.Run("garbage token yields 401", func(t *testing.T) {
		body, contentType := storyForm(t, map[string]string{
			"title": "A", "content": "B", "category": "Epic",
		}, nil)

		resp := doRequest(t, app, "POST", "/api/stories", "not.a.token", body, contentType)
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("got status %d, want 401", resp.StatusCode)
		}
	})

	t.Run("empty title yields 400 and persists nothing", func(t *testing.T) {
		body, contentType := storyForm(t, map[string]string{
			"title": "", "content": "B", "category": "Epic",
		}, nil)

		resp := doRequest(t, app, "POST", "/api/stories", token, body, contentType)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("got status %d, want 400", resp.StatusCode)
		}

		var count int64
		database.C.Model(&models.Story{}).Count(&count)
		if count != 0 {
			t.Fatalf("got %d stories after a rejected create, want 0", count)
		}
	})
}

func TestStoryUploadFailureAbortsCreate(t *testing.T) {
	app, host := setupTestApp(t)
	token := testutil.SignTestToken(t, testSecret, "idp_u1", "alice")

	host.FailNext = true
	body, contentType := storyForm(t, map[string]string{
		"title": "A", "content": "B", "category": "Epic",
	}, map[string][]string{
		"images": {"one.png", "two.png"},
	})

	resp := doRequest(t, app, "POST", "/api/stories", token, body, contentType)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", resp.StatusCode)
	}

	var count int64
	database.C.Model(&models.Story{}).Count(&count)
	if count != 0 {
		t.Fatalf("got %d stories after a failed upload, want 0", count)
	}
}

func TestStoryAuthorOnlyMutations(t *testing.T) {
	app, host := setupTestApp(t)
	authorToken := testutil.SignTestToken(t, testSecret, "idp_u1", "alice")
	otherToken := testutil.SignTestToken(t, testSecret, "idp_u2", "bob")

	body, contentType := storyForm(t, map[string]string{
		"title": "A", "content": "B", "category": "Epic",
	}, nil)
	created := decodeStory(t, doRequest(t, app, "POST", "/api/stories", authorToken, body, contentType))

	t.Run("non-author edit yields 403", func(t *testing.T) {
		body, contentType := storyForm(t, map[string]string{"title": "hijacked"}, nil)

		resp := doRequest(t, app, "PUT", fmt.Sprintf("/api/stories/%d", created.ID), otherToken, body, contentType)
		if resp.StatusCode != fiber.StatusForbidden {
			t.Fatalf("got status %d, want 403", resp.StatusCode)
		}
	})

	t.Run("non-author delete yields 403", func(t *testing.T) {
		resp := doRequest(t, app, "DELETE", fmt.Sprintf("/api/stories/%d", created.ID), otherToken, nil, "")
		if resp.StatusCode != fiber.StatusForbidden {
			t.Fatalf("got status %d, want 403", resp.StatusCode)
		}
	})

	t.Run("blanked title yields 400 before any upload", func(t *testing.T) {
		stored := host.Len()
		body, contentType := storyForm(t, map[string]string{"title": ""}, map[string][]string{
			"images": {"sneaky.png"},
		})

		resp := doRequest(t, app, "PUT", fmt.Sprintf("/api/stories/%d", created.ID), authorToken, body, contentType)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("got status %d, want 400", resp.StatusCode)
		}
		if host.Len() != stored {
			t.Fatalf("got %d stored files, want %d; a rejected edit must not upload", host.Len(), stored)
		}
	})

	t.Run("author partial edit keeps absent fields", func(t *testing.T) {
		body, contentType := storyForm(t, map[string]string{"title": "A2"}, nil)

		resp := doRequest(t, app, "PUT", fmt.Sprintf("/api/stories/%d", created.ID), authorToken, body, contentType)
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("got status %d, want 200", resp.StatusCode)
		}
		updated := decodeStory(t, resp)
		if updated.Title != "A2" || updated.Content != "B" || updated.Category != "Epic" {
			t.Fatalf("got story %+v, want only the title changed", updated)
		}
	})
}

func TestStoryLikeToggleEndpoint(t *testing.T) {
	app, _ := setupTestApp(t)
	authorToken := testutil.SignTestToken(t, testSecret, "idp_u1", "alice")
	readerToken := testutil.SignTestToken(t, testSecret, "idp_u2", "bob")

	body, contentType := storyForm(t, map[string]string{
		"title": "A", "content": "B", "category": "Epic",
	}, nil)
	created := decodeStory(t, doRequest(t, app, "POST", "/api/stories", authorToken, body, contentType))

	target := fmt.Sprintf("/api/stories/%d/like", created.ID)

	first := decodeStory(t, doRequest(t, app, "POST", target, readerToken, nil, ""))
	if len(first.Likes) != 1 {
		t.Fatalf("got %d likes after one toggle, want 1", len(first.Likes))
	}

	second := decodeStory(t, doRequest(t, app, "POST", target, readerToken, nil, ""))
	if len(second.Likes) != 0 {
		t.Fatalf("got %d likes after a double toggle, want 0", len(second.Likes))
	}
}

func TestBookmarkedFeed(t *testing.T) {
	app, _ := setupTestApp(t)
	authorToken := testutil.SignTestToken(t, testSecret, "idp_u1", "alice")
	readerToken := testutil.SignTestToken(t, testSecret, "idp_u2", "bob")

	body, contentType := storyForm(t, map[string]string{
		"title": "A", "content": "B", "category": "Epic",
	}, nil)
	created := decodeStory(t, doRequest(t, app, "POST", "/api/stories", authorToken, body, contentType))

	doRequest(t, app, "POST", fmt.Sprintf("/api/stories/%d/bookmark", created.ID), readerToken, nil, "")

	resp := doRequest(t, app, "GET", "/api/stories/bookmarked", readerToken, nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var listing struct {
		Count int64          `json:"count"`
		Data  []models.Story `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("unable to decode listing: %v", err)
	}
	if listing.Count != 1 || len(listing.Data) != 1 || listing.Data[0].ID != created.ID {
		t.Fatalf("got listing %+v, want just the bookmarked story", listing)
	}

	// The author bookmarked nothing
	resp = doRequest(t, app, "GET", "/api/stories/bookmarked", authorToken, nil, "")
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("unable to decode listing: %v", err)
	}
	if listing.Count != 0 {
		t.Fatalf("got %d bookmarked stories for the author, want 0", listing.Count)
	}
}

func TestCommentEndpoints(t *testing.T) {
	app, _ := setupTestApp(t)
	authorToken := testutil.SignTestToken(t, testSecret, "idp_u1", "alice")
	readerToken := testutil.SignTestToken(t, testSecret, "idp_u2", "bob")

	body, contentType := storyForm(t, map[string]string{
		"title": "A", "content": "B", "category": "Epic",
	}, nil)
	created := decodeStory(t, doRequest(t, app, "POST", "/api/stories", authorToken, body, contentType))

	target := fmt.Sprintf("/api/stories/%d/comments", created.ID)

	resp := doRequest(t, app, "POST", target, readerToken,
		strings.NewReader(`{"content":"well written"}`), fiber.MIMEApplicationJSON)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("got status %d, want 201", resp.StatusCode)
	}

	var comment models.Comment
	if err := json.NewDecoder(resp.Body).Decode(&comment); err != nil {
		t.Fatalf("unable to decode comment: %v", err)
	}
	if comment.Body != "well written" || comment.AuthorName != "bob" {
		t.Fatalf("got comment %+v, want body and snapshotted author name", comment)
	}

	t.Run("empty content yields 400", func(t *testing.T) {
		resp := doRequest(t, app, "POST", target, readerToken,
			strings.NewReader(`{"content":""}`), fiber.MIMEApplicationJSON)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("got status %d, want 400", resp.StatusCode)
		}
	})

	t.Run("non-author delete yields 403", func(t *testing.T) {
		resp := doRequest(t, app, "DELETE",
			fmt.Sprintf("/api/stories/%d/comments/%d", created.ID, comment.ID), authorToken, nil, "")
		if resp.StatusCode != fiber.StatusForbidden {
			t.Fatalf("got status %d, want 403", resp.StatusCode)
		}
	})

	t.Run("author delete restores the count", func(t *testing.T) {
		resp := doRequest(t, app, "DELETE",
			fmt.Sprintf("/api/stories/%d/comments/%d", created.ID, comment.ID), readerToken, nil, "")
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("got status %d, want 200", resp.StatusCode)
		}
		updated := decodeStory(t, resp)
		if len(updated.Comments) != 0 {
			t.Fatalf("got %d comments after delete, want 0", len(updated.Comments))
		}
	})

	t.Run("unknown comment yields 404", func(t *testing.T) {
		resp := doRequest(t, app, "DELETE",
			fmt.Sprintf("/api/stories/%d/comments/99999", created.ID), readerToken, nil, "")
		if resp.StatusCode != fiber.StatusNotFound {
			t.Fatalf("got status %d, want 404", resp.StatusCode)
		}
	})
}

func TestProfileStoryPaging(t *testing.T) {
	app, _ := setupTestApp(t)
	token := testutil.SignTestToken(t, testSecret, "idp_u1", "alice")

	for i := 0; i < 3; i++ {
		body, contentType := storyForm(t, map[string]string{
			"title": fmt.Sprintf("Story %d", i), "content": "C", "category": "Epic",
		}, nil)
		resp := doRequest(t, app, "POST", "/api/stories", token, body, contentType)
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("got status %d on seed create, want 201", resp.StatusCode)
		}
	}

	resp := doRequest(t, app, "GET", "/api/users/me?take=2", token, nil, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var profile struct {
		Account    models.Account `json:"account"`
		StoryCount int64          `json:"story_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("unable to decode profile: %v", err)
	}
	if len(profile.Account.Stories) != 2 {
		t.Fatalf("got %d stories in the page, want 2", len(profile.Account.Stories))
	}
	if profile.StoryCount != 3 {
		t.Fatalf("got story count %d, want the full total 3", profile.StoryCount)
	}
}

func TestListStoryFilters(t *testing.T) {
	app, _ := setupTestApp(t)
	token := testutil.SignTestToken(t, testSecret, "idp_u1", "alice")

	for _, item := range []struct{ title, category string }{
		{"How we lost the staging cluster", "Epic"},
		{"Tabs versus spaces, settled", "Debate"},
	} {
		body, contentType := storyForm(t, map[string]string{
			"title": item.title, "content": "C", "category": item.category,
		}, nil)
		resp := doRequest(t, app, "POST", "/api/stories", token, body, contentType)
		if resp.StatusCode != fiber.StatusCreated {
			t.Fatalf("got status %d on seed create, want 201", resp.StatusCode)
		}
	}

	var listing struct {
		Count int64          `json:"count"`
		Data  []models.Story `json:"data"`
	}

	resp := doRequest(t, app, "GET", "/api/stories?category=Epic", "", nil, "")
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("unable to decode listing: %v", err)
	}
	if listing.Count != 1 || listing.Data[0].Category != "Epic" {
		t.Fatalf("got listing %+v, want only the Epic story", listing)
	}

	resp = doRequest(t, app, "GET", "/api/stories", "", nil, "")
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		t.Fatalf("unable to decode listing: %v", err)
	}
	if listing.Count != 2 {
		t.Fatalf("got %d stories, want 2", listing.Count)
	}
	// Newest first
	if listing.Data[0].Title != "Tabs versus spaces, settled" {
		t.Fatalf("got first story %q, want the newest one", listing.Data[0].Title)
	}
}
