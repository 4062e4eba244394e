package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// ClientConfig es ~/.config/husbandry/client.toml. Los flags lo pisan.
type ClientConfig struct {
	ServerURL    string `toml:"server_url"`
	FallbackPath string `toml:"fallback_path"`
	Timeout      string `toml:"timeout"`
}

const (
	DefaultConfigPath = "~/.config/husbandry/client.toml"

	defaultServerURL    = "http://localhost:3001"
	defaultFallbackPath = "~/.local/share/husbandry/fallback.json"
	defaultTimeout      = 10 * time.Second
)

// LoadClientConfig devuelve los defaults si el archivo no existe.
func LoadClientConfig(path string) (ClientConfig, error) {
	cfg := ClientConfig{ServerURL: defaultServerURL, FallbackPath: defaultFallbackPath}

	if strings.TrimSpace(path) == "" {
		path = DefaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return cfg, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open client config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return cfg, fmt.Errorf("read client config: %w", err)
	}

	var raw ClientConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return cfg, fmt.Errorf("parse client config %s: %w", resolved, err)
	}
	if v := strings.TrimSpace(raw.ServerURL); v != "" {
		cfg.ServerURL = v
	}
	if v := strings.TrimSpace(raw.FallbackPath); v != "" {
		cfg.FallbackPath = v
	}
	cfg.Timeout = strings.TrimSpace(raw.Timeout)
	return cfg, nil
}

func (c ClientConfig) timeout() (time.Duration, error) {
	if c.Timeout == "" {
		return defaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q", c.Timeout)
	}
	return d, nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
