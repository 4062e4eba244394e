package media

import (
	"context"
	"errors"
	"io"
	"time"
)

// Driver identifica el backend de almacenamiento de imágenes.
type Driver string

const (
	DriverFS Driver = "fs"
	DriverS3 Driver = "s3"
)

var (
	ErrNotFound   = errors.New("media: object not found")
	ErrExists     = errors.New("media: object already exists")
	ErrInvalidKey = errors.New("media: invalid key")
)

// Object describe una imagen guardada.
type Object struct {
	Key         string
	Size        int64
	ContentType string
	ETag        string
	ModTime     time.Time
}

// Store es el puerto que usan el upload y el serving de /uploads.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Object, error)
	Get(ctx context.Context, key string) (Object, io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Driver() Driver
}
