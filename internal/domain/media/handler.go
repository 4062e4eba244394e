package media

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"husbandry-tracker/internal/platform/respond"
	mediaport "husbandry-tracker/internal/ports/media"

	"github.com/go-chi/chi/v5"
)

type uploadResponse struct {
	URL string `json:"url"`
}

// RegisterRoutes monta POST /uploads (bajo /api).
func RegisterRoutes(r chi.Router, svc *Service, maxBytes int64) {
	r.Post("/uploads", uploadHandler(svc, maxBytes))
}

// ServeRoutes monta GET /uploads/* en la raíz.
func ServeRoutes(r chi.Router, svc *Service) {
	r.Get(PublicPrefix+"*", serveHandler(svc))
}

// uploadHandler godoc
// @Summary Subir imagen
// @Description Recibe multipart con el campo "image" y devuelve la URL para animal.image.
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Imagen"
// @Success 201 {object} uploadResponse
// @Failure 400 {object} respond.ErrorBody
// @Failure 413 {object} respond.ErrorBody
// @Router /uploads [post]
func uploadHandler(svc *Service, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
				respond.Error(w, http.StatusRequestEntityTooLarge, "file too large")
				return
			}
			respond.Error(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		file, header, err := r.FormFile("image")
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "image field required")
			return
		}
		defer file.Close()

		url, err := svc.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			if errors.Is(err, ErrNotImage) || errors.Is(err, mediaport.ErrInvalidKey) {
				respond.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			respond.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		respond.JSON(w, http.StatusCreated, uploadResponse{URL: url})
	}
}

func serveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		obj, rc, err := svc.Open(r.Context(), key)
		if err != nil {
			if errors.Is(err, mediaport.ErrNotFound) || errors.Is(err, mediaport.ErrInvalidKey) {
				http.NotFound(w, r)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rc.Close()

		if obj.ETag != "" {
			etag := `"` + obj.ETag + `"`
			if r.Header.Get("If-None-Match") == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			w.Header().Set("ETag", etag)
		}
		if obj.ContentType != "" {
			w.Header().Set("Content-Type", obj.ContentType)
		}
		if obj.Size > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
		}
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		_, _ = io.Copy(w, rc)
	}
}
