// Package stats agrupa los conteos por estado de cada entidad.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

type Entity string

const (
	EntityAnimals   Entity = "animals"
	EntityBreedings Entity = "breedings"
	EntityHatchings Entity = "hatchings"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type Snapshot struct {
	Animals   []StatusCount `json:"animals"`
	Breedings []StatusCount `json:"breedings"`
	Hatchings []StatusCount `json:"hatchings"`
}

type Repository interface {
	StatusCounts(ctx context.Context, entity Entity) ([]StatusCount, error)
}

const snapshotKey = "snapshot"

type Service struct {
	repo  Repository
	cache *cache.Cache
}

// NewService cachea el snapshot ttl; ttl <= 0 desactiva el cache.
func NewService(repo Repository, ttl time.Duration) *Service {
	s := &Service{repo: repo}
	if ttl > 0 {
		s.cache = cache.New(ttl, 2*ttl)
	}
	return s
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(snapshotKey); ok {
			return v.(Snapshot), nil
		}
	}

	var (
		snap Snapshot
		err  error
	)
	if snap.Animals, err = s.repo.StatusCounts(ctx, EntityAnimals); err != nil {
		return Snapshot{}, fmt.Errorf("animal stats: %w", err)
	}
	if snap.Breedings, err = s.repo.StatusCounts(ctx, EntityBreedings); err != nil {
		return Snapshot{}, fmt.Errorf("breeding stats: %w", err)
	}
	if snap.Hatchings, err = s.repo.StatusCounts(ctx, EntityHatchings); err != nil {
		return Snapshot{}, fmt.Errorf("hatching stats: %w", err)
	}

	if s.cache != nil {
		s.cache.SetDefault(snapshotKey, snap)
	}
	return snap, nil
}

// Invalidate se llama después de cada escritura exitosa.
func (s *Service) Invalidate() {
	if s.cache != nil {
		s.cache.Delete(snapshotKey)
	}
}
