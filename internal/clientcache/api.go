package clientcache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"husbandry-tracker/internal/domain/stats"
	"husbandry-tracker/internal/platform/httpclient"
)

var (
	// ErrUnreachable: el servidor no respondió o respondió 502/503/504. Dispara el respaldo local.
	ErrUnreachable = errors.New("server unreachable")
	ErrNotFound    = errors.New("record not found")
)

// API es el cliente tipado de /api. Todos los errores pasan por classify.
type API struct {
	http *httpclient.Client
}

func NewAPI(c *httpclient.Client) *API {
	return &API{http: c}
}

type createResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

func (a *API) ListAnimals(ctx context.Context) ([]Animal, error) {
	out := make([]Animal, 0)
	err := a.http.DoJSON(ctx, http.MethodGet, "/api/animals", nil, &out)
	return out, classify(err)
}

func (a *API) ListBreedings(ctx context.Context) ([]Breeding, error) {
	out := make([]Breeding, 0)
	err := a.http.DoJSON(ctx, http.MethodGet, "/api/breedings", nil, &out)
	return out, classify(err)
}

func (a *API) ListHatchings(ctx context.Context) ([]Hatching, error) {
	out := make([]Hatching, 0)
	err := a.http.DoJSON(ctx, http.MethodGet, "/api/hatchings", nil, &out)
	return out, classify(err)
}

// Fetch trae las tres colecciones; falla entera si falla cualquiera.
func (a *API) Fetch(ctx context.Context) (Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)
	if snap.Animals, err = a.ListAnimals(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Breedings, err = a.ListBreedings(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Hatchings, err = a.ListHatchings(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (a *API) Create(ctx context.Context, e Entity, fields map[string]any) (string, error) {
	var out createResponse
	if err := a.http.DoJSON(ctx, http.MethodPost, "/api/"+string(e), fields, &out); err != nil {
		return "", classify(err)
	}
	return out.ID, nil
}

func (a *API) Update(ctx context.Context, e Entity, id string, fields map[string]any) error {
	return classify(a.http.DoJSON(ctx, http.MethodPut, recordPath(e, id), fields, nil))
}

func (a *API) Delete(ctx context.Context, e Entity, id string) error {
	return classify(a.http.DoJSON(ctx, http.MethodDelete, recordPath(e, id), nil, nil))
}

func (a *API) Stats(ctx context.Context) (stats.Snapshot, error) {
	var out stats.Snapshot
	err := a.http.DoJSON(ctx, http.MethodGet, "/api/stats", nil, &out)
	return out, classify(err)
}

type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func (a *API) Health(ctx context.Context) (Health, error) {
	var out Health
	err := a.http.DoJSON(ctx, http.MethodGet, "/api/health", nil, &out)
	return out, classify(err)
}

func recordPath(e Entity, id string) string {
	return "/api/" + string(e) + "/" + url.PathEscape(id)
}

// classify: falla de transporte o 502/503/504 => ErrUnreachable; 404 => ErrNotFound.
// Un 500 es una falla del store y vuelve tal cual al caller. El *httpclient.HTTPError
// original queda en la cadena.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, httpclient.ErrTransport) {
		return fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		switch he.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return fmt.Errorf("%w: %w", ErrUnreachable, err)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
	}
	return err
}

func statusOf(err error) int {
	var he *httpclient.HTTPError
	if errors.As(err, &he) {
		return he.StatusCode
	}
	return 0
}
