package clientcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FallbackStore es la copia local que se usa cuando el servidor no responde.
type FallbackStore interface {
	Load() (FallbackState, error)
	Save(FallbackState) error
}

// FallbackState es lo que se persiste: la última vista más las operaciones sin confirmar.
type FallbackState struct {
	Snapshot
	Pending []Operation `json:"pending"`
}

// FileStore guarda el estado como un documento JSON. Escribe a un temporal y renombra.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("fallback path required")
	}
	return &FileStore{path: filepath.Clean(path)}, nil
}

func (s *FileStore) Path() string { return s.path }

// Load devuelve un estado vacío si el archivo todavía no existe.
func (s *FileStore) Load() (FallbackState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return FallbackState{}, nil
	}
	if err != nil {
		return FallbackState{}, fmt.Errorf("read fallback: %w", err)
	}

	var st FallbackState
	if err := json.Unmarshal(raw, &st); err != nil {
		return FallbackState{}, fmt.Errorf("decode fallback %s: %w", s.path, err)
	}
	return st, nil
}

func (s *FileStore) Save(st FallbackState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fallback: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir fallback dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".fallback-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename fallback: %w", err)
	}
	return nil
}

// memoryFallback no persiste nada; es el default cuando no hay archivo configurado.
type memoryFallback struct {
	mu sync.Mutex
	st FallbackState
}

func (m *memoryFallback) Load() (FallbackState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.st, nil
}

func (m *memoryFallback) Save(st FallbackState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.st = st
	return nil
}
