package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/require"

	"zapit/internal/service"
	"zapit/internal/storage"
)

const testDomain = "example.org"

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := storage.Open("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	linkStore := storage.NewLinkStore(db)
	ingest := service.NewIngestService(linkStore, nil, logger)
	feed := service.NewFeedService(linkStore, testDomain, logger)
	h := NewHandler(ingest, feed, logger)

	r := gin.New()
	r.POST("/add", h.AddLink)
	r.GET("/feed.xml", h.Feed)

	return r
}

func postAdd(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	return w
}

func TestAddLink_Created(t *testing.T) {
	r := setupRouter(t)

	w := postAdd(t, r, `{"title": "A", "link": "https://example.com/x"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Greater(t, resp.ID, int64(0))
}

func TestAddLink_Duplicate(t *testing.T) {
	r := setupRouter(t)

	w := postAdd(t, r, `{"link": "https://example.com/x"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postAdd(t, r, `{"link": "https://example.com/x"}`)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAddLink_InvalidURL(t *testing.T) {
	r := setupRouter(t)

	w := postAdd(t, r, `{"link": "not a url"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddLink_MalformedBody(t *testing.T) {
	r := setupRouter(t)

	w := postAdd(t, r, `{"link": `)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeed_Empty(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/feed.xml", http.NoBody)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestFeed_RoundTrip(t *testing.T) {
	r := setupRouter(t)
	pubDate := time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC)

	w := postAdd(t, r, `{"title": "A", "link": "https://example.com/x", "pub_date": "`+pubDate.Format(time.RFC3339)+`"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/feed.xml", http.NoBody)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	parsed, err := gofeed.NewParser().ParseString(w.Body.String())
	require.NoError(t, err)
	require.Equal(t, testDomain, parsed.Link)
	require.Len(t, parsed.Items, 1)

	item := parsed.Items[0]
	require.Equal(t, "A", item.Title)
	require.Equal(t, "https://example.com/x", item.Link)
	require.NotNil(t, item.PublishedParsed)
	require.True(t, item.PublishedParsed.Equal(pubDate))
}

func TestFeed_MostRecentFirst(t *testing.T) {
	r := setupRouter(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Submit oldest first, expect newest first in the feed.
	for i, offset := range []time.Duration{0, time.Hour, 2 * time.Hour} {
		body := `{"link": "https://example.com/` + string(rune('a'+i)) + `", "pub_date": "` +
			base.Add(offset).Format(time.RFC3339) + `"}`
		w := postAdd(t, r, body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/feed.xml", http.NoBody)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	parsed, err := gofeed.NewParser().ParseString(w.Body.String())
	require.NoError(t, err)
	require.Len(t, parsed.Items, 3)
	require.Equal(t, "https://example.com/c", parsed.Items[0].Link)
	require.Equal(t, "https://example.com/b", parsed.Items[1].Link)
	require.Equal(t, "https://example.com/a", parsed.Items[2].Link)
}
