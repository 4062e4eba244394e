// Package fs guarda las imágenes subidas en un directorio local.
// Cada objeto tiene un sidecar <key>.meta con content type y etag.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"husbandry-tracker/internal/ports/media"
)

type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		root = "uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Driver() media.Driver { return media.DriverFS }

type metaFile struct {
	ContentType string    `json:"content_type,omitempty"`
	ETag        string    `json:"etag"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *Store) Put(_ context.Context, key string, r io.Reader, contentType string) (media.Object, error) {
	dataPath, metaPath, err := s.pathFor(key)
	if err != nil {
		return media.Object{}, err
	}
	if _, err := os.Stat(dataPath); err == nil {
		return media.Object{}, fmt.Errorf("%w: %s", media.ErrExists, key)
	}
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return media.Object{}, err
	}

	// se escribe a un temporal y se renombra: nunca queda un archivo a medias con el nombre final
	tmp, err := os.CreateTemp(filepath.Dir(dataPath), ".tmp-*")
	if err != nil {
		return media.Object{}, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	h := sha256.New()
	size, err := io.Copy(io.MultiWriter(tmp, h), r)
	if err != nil {
		_ = tmp.Close()
		return media.Object{}, err
	}
	if err := tmp.Close(); err != nil {
		return media.Object{}, err
	}
	if err := os.Rename(tmp.Name(), dataPath); err != nil {
		return media.Object{}, err
	}

	mf := metaFile{
		ContentType: contentType,
		ETag:        hex.EncodeToString(h.Sum(nil)),
		Size:        size,
		CreatedAt:   time.Now().UTC(),
	}
	b, err := json.Marshal(mf)
	if err != nil {
		return media.Object{}, err
	}
	if err := os.WriteFile(metaPath, b, 0o644); err != nil {
		return media.Object{}, err
	}
	return toObject(key, mf), nil
}

func (s *Store) Get(_ context.Context, key string) (media.Object, io.ReadCloser, error) {
	dataPath, metaPath, err := s.pathFor(key)
	if err != nil {
		return media.Object{}, nil, err
	}
	f, err := os.Open(dataPath)
	if errors.Is(err, iofs.ErrNotExist) {
		return media.Object{}, nil, media.ErrNotFound
	}
	if err != nil {
		return media.Object{}, nil, err
	}

	mf, err := readMeta(metaPath)
	if errors.Is(err, iofs.ErrNotExist) {
		// archivos copiados a mano en uploads/ sin sidecar
		st, statErr := f.Stat()
		if statErr != nil {
			_ = f.Close()
			return media.Object{}, nil, statErr
		}
		mf = metaFile{Size: st.Size(), CreatedAt: st.ModTime()}
	} else if err != nil {
		_ = f.Close()
		return media.Object{}, nil, err
	}
	return toObject(key, mf), f, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	dataPath, metaPath, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dataPath); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return media.ErrNotFound
		}
		return err
	}
	_ = os.Remove(metaPath)
	return nil
}

func (s *Store) pathFor(key string) (dataPath, metaPath string, err error) {
	k, err := sanitizeKey(key)
	if err != nil {
		return "", "", err
	}
	dataPath = filepath.Join(s.root, filepath.FromSlash(k))
	return dataPath, dataPath + ".meta", nil
}

// sanitizeKey impide salir de root.
func sanitizeKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") || strings.HasSuffix(key, ".meta") {
		return "", fmt.Errorf("%w: %q", media.ErrInvalidKey, key)
	}
	return filepath.ToSlash(filepath.Clean(key)), nil
}

func readMeta(path string) (metaFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return metaFile{}, err
	}
	var mf metaFile
	if err := json.Unmarshal(b, &mf); err != nil {
		return metaFile{}, err
	}
	return mf, nil
}

func toObject(key string, mf metaFile) media.Object {
	return media.Object{
		Key:         key,
		Size:        mf.Size,
		ContentType: mf.ContentType,
		ETag:        mf.ETag,
		ModTime:     mf.CreatedAt,
	}
}
