package sqlstore

import (
	"context"
	"fmt"

	"husbandry-tracker/internal/domain/lifecycle"
	"husbandry-tracker/internal/domain/stats"
)

type StatsRepo struct {
	*Store
}

func NewStatsRepo(s *Store) *StatsRepo {
	return &StatsRepo{Store: s}
}

type statsTable struct {
	name string
	// estado que usan los scanners cuando la fila tiene status NULL o vacío
	defaultStatus string
}

var statsTables = map[stats.Entity]statsTable{
	stats.EntityAnimals:   {name: "animals", defaultStatus: string(lifecycle.AnimalActive)},
	stats.EntityBreedings: {name: "breedings", defaultStatus: string(lifecycle.BreedingPending)},
	stats.EntityHatchings: {name: "hatchings", defaultStatus: string(lifecycle.HatchingIncubating)},
}

func (r *StatsRepo) StatusCounts(ctx context.Context, entity stats.Entity) ([]stats.StatusCount, error) {
	table, ok := statsTables[entity]
	if !ok {
		return nil, fmt.Errorf("sqlstore: unknown stats entity %q", entity)
	}

	// tabla y default vienen de código, nunca del request
	rows, err := r.query(ctx, fmt.Sprintf(
		`SELECT COALESCE(NULLIF(status, ''), '%s'), COUNT(*) FROM %s GROUP BY 1 ORDER BY 1`,
		table.defaultStatus, table.name,
	))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]stats.StatusCount, 0)
	for rows.Next() {
		var c stats.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
