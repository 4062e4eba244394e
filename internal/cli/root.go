// Package cli implementa husbandryctl: el cliente de línea de comandos que
// trabaja sobre clientcache, con respaldo local cuando el servidor no responde.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"husbandry-tracker/internal/clientcache"
	"husbandry-tracker/internal/platform/httpclient"
	"husbandry-tracker/internal/platform/logger"
)

type app struct {
	out    io.Writer
	styles styles

	api   *clientcache.API
	cache *clientcache.Cache
}

func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	var (
		configPath   string
		serverURL    string
		fallbackPath string
		logLevel     string
	)

	a := &app{out: out, styles: newStyles(out)}

	root := &cobra.Command{
		Use:           "husbandryctl",
		Short:         "Track animals, breedings and hatchings from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadClientConfig(configPath)
			if err != nil {
				return err
			}
			if v := strings.TrimSpace(serverURL); v != "" {
				cfg.ServerURL = v
			}
			if v := strings.TrimSpace(fallbackPath); v != "" {
				cfg.FallbackPath = v
			}
			log := logger.New(logger.Options{
				Level:  logger.ParseLevel(logLevel),
				Format: logger.FormatText,
				App:    "husbandryctl",
				Output: errOut,
			})
			return a.init(cfg, log)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", DefaultConfigPath, "client config file (TOML)")
	pf.StringVar(&serverURL, "server", "", "API base URL (overrides server_url)")
	pf.StringVar(&fallbackPath, "fallback", "", "local fallback file (overrides fallback_path)")
	pf.StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")

	root.AddCommand(
		a.animalsCommand(),
		a.breedingsCommand(),
		a.hatchingsCommand(),
		a.syncCommand(),
		a.statsCommand(),
	)
	return root
}

func (a *app) init(cfg ClientConfig, log logger.Logger) error {
	timeout, err := cfg.timeout()
	if err != nil {
		return err
	}
	hc, err := httpclient.New(httpclient.Options{
		BaseURL:   cfg.ServerURL,
		Timeout:   timeout,
		UserAgent: "husbandryctl",
	})
	if err != nil {
		return err
	}

	path, err := expandPath(cfg.FallbackPath)
	if err != nil {
		return fmt.Errorf("fallback path: %w", err)
	}
	fb, err := clientcache.NewFileStore(path)
	if err != nil {
		return err
	}

	a.api = clientcache.NewAPI(hc)
	a.cache, err = clientcache.New(a.api, clientcache.Options{Fallback: fb, Logger: log})
	return err
}
