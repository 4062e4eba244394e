package hatchings

import "context"

type Repository interface {
	Create(ctx context.Context, h Hatching) error
	GetByID(ctx context.Context, id string) (Hatching, error)
	List(ctx context.Context) ([]Hatching, error)
	// UpdateProgress toca status, actualHatchDate, hatchedEggs, temperature, humidity, notes.
	UpdateProgress(ctx context.Context, h Hatching) error
	Delete(ctx context.Context, id string) error
}
