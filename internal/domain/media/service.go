// Package media sube y sirve las fotos de los animales.
package media

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"husbandry-tracker/internal/platform/logger"
	mediaport "husbandry-tracker/internal/ports/media"

	"github.com/google/uuid"
)

// PublicPrefix es donde se sirven las imágenes; es el valor que termina en animal.image.
const PublicPrefix = "/uploads/"

var ErrNotImage = errors.New("only image uploads are accepted")

var allowedExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

type Service struct {
	store  mediaport.Store
	log    logger.Logger
	newKey func(ext string) string
}

func NewService(store mediaport.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		log:   log.With(map[string]any{"component": "media", "driver": string(store.Driver())}),
		newKey: func(ext string) string {
			return "image-" + uuid.NewString() + ext
		},
	}
}

// Upload guarda r con una key nueva y devuelve la URL pública.
func (s *Service) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := allowedExt[ext]; ok {
		if contentType == "" || contentType == "application/octet-stream" {
			contentType = ct
		}
	} else if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	obj, err := s.store.Put(ctx, s.newKey(ext), r, contentType)
	if err != nil {
		return "", err
	}
	s.log.Info("image stored", map[string]any{"key": obj.Key, "size": obj.Size})
	return PublicPrefix + obj.Key, nil
}

// Remove borra la imagen detrás de una URL pública. URLs externas y objetos
// que ya no existen no son error.
func (s *Service) Remove(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, PublicPrefix)
	if !ok || key == "" {
		return nil
	}
	if err := s.store.Delete(ctx, key); err != nil {
		if errors.Is(err, mediaport.ErrNotFound) {
			return nil
		}
		return err
	}
	s.log.Info("image removed", map[string]any{"key": key})
	return nil
}

func (s *Service) Open(ctx context.Context, key string) (mediaport.Object, io.ReadCloser, error) {
	return s.store.Get(ctx, key)
}
