package media

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"husbandry-tracker/internal/adapters/media/fs"
	"husbandry-tracker/internal/platform/logger"
	mediaport "husbandry-tracker/internal/ports/media"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T, maxBytes int64) http.Handler {
	t.Helper()
	store, err := fs.New(t.TempDir())
	require.NoError(t, err)

	svc := NewService(store, logger.Nop())
	svc.newKey = func(ext string) string { return "image-fixed" + ext }

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) { RegisterRoutes(api, svc, maxBytes) })
	ServeRoutes(r, svc)
	return r
}

func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write(data)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadThenServe(t *testing.T) {
	h := newRouter(t, 1<<20)

	body, ct := multipartBody(t, "image", "bunny.PNG", "image/png", []byte("\x89PNG..."))
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var out uploadResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, "/uploads/image-fixed.png", out.URL)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, out.URL, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "\x89PNG...", rr.Body.String())

	etag := rr.Header().Get("ETag")
	require.NotEmpty(t, etag)
	req = httptest.NewRequest(http.MethodGet, out.URL, nil)
	req.Header.Set("If-None-Match", etag)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotModified, rr.Code)
}

func TestUpload_RejectsNonImage(t *testing.T) {
	h := newRouter(t, 1<<20)

	body, ct := multipartBody(t, "image", "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpload_MissingField(t *testing.T) {
	h := newRouter(t, 1<<20)

	body, ct := multipartBody(t, "photo", "a.png", "image/png", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "image field required")
}

func TestUpload_TooLarge(t *testing.T) {
	h := newRouter(t, 64)

	body, ct := multipartBody(t, "image", "big.png", "image/png", bytes.Repeat([]byte("x"), 1024))
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", body)
	req.Header.Set("Content-Type", ct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestServe_Missing(t *testing.T) {
	h := newRouter(t, 1<<20)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/nope.png", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store, err := fs.New(t.TempDir())
	require.NoError(t, err)
	svc := NewService(store, logger.Nop())

	url, err := svc.Upload(ctx, "bunny.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, url))
	_, _, err = svc.Open(ctx, strings.TrimPrefix(url, PublicPrefix))
	assert.ErrorIs(t, err, mediaport.ErrNotFound)

	// ya borrada o externa: no es error
	assert.NoError(t, svc.Remove(ctx, url))
	assert.NoError(t, svc.Remove(ctx, "https://example.com/bunny.png"))
	assert.NoError(t, svc.Remove(ctx, ""))
}
