package breedings

import "context"

type Repository interface {
	Create(ctx context.Context, b Breeding) error
	GetByID(ctx context.Context, id string) (View, error)
	// ListWithAnimalNames: breedings LEFT JOIN animals (macho y hembra), createdAt desc.
	ListWithAnimalNames(ctx context.Context) ([]View, error)
	// UpdateOutcome solo toca status, actualDate, offspring, notes y updatedAt.
	UpdateOutcome(ctx context.Context, b Breeding) error
	Delete(ctx context.Context, id string) error
}
