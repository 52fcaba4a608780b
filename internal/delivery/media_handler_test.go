package delivery_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mediavault/internal/delivery"
	"mediavault/internal/domain"
	"mediavault/internal/infra"
)

const basePath = "/upload/data"

func newTestServer(t *testing.T, maxBody int64) *httptest.Server {
	t.Helper()

	repo := infra.NewMemoryMediaRepo()
	svc := domain.NewMediaService(repo)
	zl := logger.NewZapLogger(zap.NewNop().Sugar())
	h := delivery.NewMediaHandler(svc, zl, basePath)

	r := chi.NewRouter()
	r.Use(middleware.RequestSize(maxBody))
	r.Route(basePath, func(r chi.Router) {
		delivery.RegisterRoutes(r, h)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

type recordResp struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	MediaKind       string   `json:"mediaKind"`
	StorageKind     string   `json:"storageKind"`
	Location        string   `json:"location"`
	MimeType        string   `json:"mimeType"`
	FileSizeBytes   int64    `json:"fileSizeBytes"`
	HasBase64Data   bool     `json:"hasBase64Data"`
	DurationSeconds *float64 `json:"durationSeconds"`
}

func TestCreateVideo(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	resp := doJSON(t, http.MethodPost, srv.URL+basePath+"/video",
		`{"title":"Sermon1","url":"https://example.com/a.mp4","duration":120}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rec recordResp
	decodeBody(t, resp, &rec)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Sermon1", rec.Title)
	assert.Equal(t, "video", rec.MediaKind)
	assert.Equal(t, "byUrl", rec.StorageKind)
	assert.Equal(t, "https://example.com/a.mp4", rec.Location)
	require.NotNil(t, rec.DurationSeconds)
	assert.Equal(t, 120.0, *rec.DurationSeconds)
}

func TestCreateValidationFailures(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	tests := []struct {
		name string
		path string
		body string
	}{
		{"video missing url", "/video", `{"title":"Sermon1"}`},
		{"video missing title", "/video", `{"url":"https://example.com/a.mp4"}`},
		{"audio missing both", "/audio", `{}`},
		{"audio-file missing data", "/audio-file", `{"title":"Recording"}`},
		{"audio-file bad data url", "/audio-file", `{"title":"Recording","audioData":"https://example.com/a.mp3"}`},
		{"audio-file video mime", "/audio-file", `{"title":"Recording","audioData":"data:video/mp4;base64,AAAA"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+basePath+tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	// nothing was persisted
	resp := doJSON(t, http.MethodGet, srv.URL+basePath+"/all", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmptyListsReturnNotFound(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	for _, path := range []string{"/url", "/audio", "/all", "/type/video"} {
		resp := doJSON(t, http.MethodGet, srv.URL+basePath+path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "GET %s", path)
	}
}

func TestListMasksEmbeddedPayloads(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	// "hello world"
	resp := doJSON(t, http.MethodPost, srv.URL+basePath+"/audio-file",
		`{"title":"Recording","audioData":"data:audio/wav;base64,aGVsbG8gd29ybGQ="}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created recordResp
	decodeBody(t, resp, &created)
	assert.Equal(t, "embedded", created.StorageKind)
	assert.NotContains(t, created.Location, "aGVsbG8", "creation response must not echo the payload")
	assert.Equal(t, int64(11), created.FileSizeBytes)

	resp = doJSON(t, http.MethodPost, srv.URL+basePath+"/audio",
		`{"title":"Linked","url":"https://example.com/a.mp3"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+basePath+"/audio", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []recordResp
	decodeBody(t, resp, &list)
	require.Len(t, list, 2)

	for _, item := range list {
		switch item.StorageKind {
		case "embedded":
			assert.Equal(t, basePath+"/audio-stream/"+item.ID, item.Location)
			assert.True(t, item.HasBase64Data)
			assert.Equal(t, int64(11), item.FileSizeBytes)
		case "byUrl":
			assert.Equal(t, "https://example.com/a.mp3", item.Location)
			assert.False(t, item.HasBase64Data)
		}
	}
}

func TestListByType(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	resp := doJSON(t, http.MethodGet, srv.URL+basePath+"/type/image", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	doJSON(t, http.MethodPost, srv.URL+basePath+"/video",
		`{"title":"Sermon1","url":"https://example.com/a.mp4"}`)
	doJSON(t, http.MethodPost, srv.URL+basePath+"/audio",
		`{"title":"Talk","url":"https://example.com/b.mp3"}`)

	resp = doJSON(t, http.MethodGet, srv.URL+basePath+"/type/audio", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []recordResp
	decodeBody(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Talk", list[0].Title)
}

func TestStreamEmbedded(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	resp := doJSON(t, http.MethodPost, srv.URL+basePath+"/audio-file",
		`{"title":"Recording","audioData":"data:audio/wav;base64,aGVsbG8gd29ybGQ="}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created recordResp
	decodeBody(t, resp, &created)

	resp = doJSON(t, http.MethodGet, srv.URL+basePath+"/audio-stream/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/wav", resp.Header.Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600", resp.Header.Get("Cache-Control"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, created.FileSizeBytes, int64(len(body)))
	assert.True(t, bytes.Equal([]byte("hello world"), body))
}

func TestStreamByURLRedirects(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	resp := doJSON(t, http.MethodPost, srv.URL+basePath+"/audio",
		`{"title":"Linked","url":"https://example.com/a.mp3"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created recordResp
	decodeBody(t, resp, &created)

	resp = doJSON(t, http.MethodGet, srv.URL+basePath+"/audio-stream/"+created.ID, "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://example.com/a.mp3", resp.Header.Get("Location"))
}

func TestStreamRejectsUnknownAndWrongKind(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	resp := doJSON(t, http.MethodGet, srv.URL+basePath+"/audio-stream/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, srv.URL+basePath+"/video",
		`{"title":"Sermon1","url":"https://example.com/a.mp4"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created recordResp
	decodeBody(t, resp, &created)

	resp = doJSON(t, http.MethodGet, srv.URL+basePath+"/audio-stream/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteLifecycle(t *testing.T) {
	srv := newTestServer(t, 1<<20)

	resp := doJSON(t, http.MethodPost, srv.URL+basePath+"/video",
		`{"title":"Sermon1","url":"https://example.com/a.mp4"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created recordResp
	decodeBody(t, resp, &created)

	resp = doJSON(t, http.MethodGet, srv.URL+basePath+"/url", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodDelete, srv.URL+basePath+"/"+created.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted struct {
		Message string     `json:"message"`
		Data    recordResp `json:"data"`
	}
	decodeBody(t, resp, &deleted)
	assert.Equal(t, created.ID, deleted.Data.ID)

	resp = doJSON(t, http.MethodDelete, srv.URL+basePath+"/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+basePath+"/url", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOversizeBodyRejectedDistinctly(t *testing.T) {
	srv := newTestServer(t, 256)

	big := strings.Repeat("A", 1024)
	resp := doJSON(t, http.MethodPost, srv.URL+basePath+"/audio-file",
		`{"title":"Recording","audioData":"data:audio/wav;base64,`+big+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}
