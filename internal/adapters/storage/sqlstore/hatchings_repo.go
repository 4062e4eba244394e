package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"husbandry-tracker/internal/domain/hatchings"
	"husbandry-tracker/internal/domain/lifecycle"
)

type HatchingsRepo struct {
	*Store
}

func NewHatchingsRepo(s *Store) *HatchingsRepo {
	return &HatchingsRepo{Store: s}
}

const hatchingColumns = `
	id, name, totalEggs,
	startDate, incubationDays, expectedHatchDate, actualHatchDate,
	hatchedEggs, status, temperature, humidity, notes,
	createdAt, updatedAt
`

func (r *HatchingsRepo) Create(ctx context.Context, h hatchings.Hatching) error {
	_, err := r.exec(ctx, `
		INSERT INTO hatchings (`+hatchingColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		h.ID,
		h.Name,
		h.TotalEggs,
		formatDate(h.StartDate),
		h.IncubationDays,
		formatDate(h.ExpectedHatchDate),
		toNullDate(h.ActualHatchDate),
		h.HatchedEggs,
		string(h.Status),
		toNullFloat(h.Temperature),
		toNullFloat(h.Humidity),
		h.Notes,
		formatTimestamp(h.CreatedAt),
		formatTimestamp(h.UpdatedAt),
	)
	return err
}

func (r *HatchingsRepo) GetByID(ctx context.Context, id string) (hatchings.Hatching, error) {
	h, err := scanHatching(r.queryRow(ctx, `SELECT `+hatchingColumns+` FROM hatchings WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return hatchings.Hatching{}, hatchings.ErrNotFound
	}
	return h, err
}

func (r *HatchingsRepo) List(ctx context.Context) ([]hatchings.Hatching, error) {
	rows, err := r.query(ctx, `SELECT `+hatchingColumns+` FROM hatchings ORDER BY createdAt DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]hatchings.Hatching, 0)
	for rows.Next() {
		h, err := scanHatching(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *HatchingsRepo) UpdateProgress(ctx context.Context, h hatchings.Hatching) error {
	return r.execAffecting(ctx, hatchings.ErrNotFound, `
		UPDATE hatchings
		SET
			status = ?,
			actualHatchDate = ?,
			hatchedEggs = ?,
			temperature = ?,
			humidity = ?,
			notes = ?,
			updatedAt = ?
		WHERE id = ?
	`,
		string(h.Status),
		toNullDate(h.ActualHatchDate),
		h.HatchedEggs,
		toNullFloat(h.Temperature),
		toNullFloat(h.Humidity),
		h.Notes,
		formatTimestamp(h.UpdatedAt),
		h.ID,
	)
}

func (r *HatchingsRepo) Delete(ctx context.Context, id string) error {
	return r.execAffecting(ctx, hatchings.ErrNotFound, `DELETE FROM hatchings WHERE id = ?`, id)
}

func scanHatching(sc scanner) (hatchings.Hatching, error) {
	var (
		h                     hatchings.Hatching
		start, expected       string
		actual, status, notes sql.NullString
		hatched               sql.NullInt64
		temperature, humidity sql.NullFloat64
		created, updated      string
	)
	if err := sc.Scan(
		&h.ID,
		&h.Name,
		&h.TotalEggs,
		&start,
		&h.IncubationDays,
		&expected,
		&actual,
		&hatched,
		&status,
		&temperature,
		&humidity,
		&notes,
		&created,
		&updated,
	); err != nil {
		return hatchings.Hatching{}, err
	}

	h.HatchedEggs = int(hatched.Int64)
	h.Status = lifecycle.HatchingIncubating
	if status.Valid && status.String != "" {
		h.Status = lifecycle.HatchingStatus(status.String)
	}
	h.Temperature = fromNullFloat(temperature)
	h.Humidity = fromNullFloat(humidity)
	h.Notes = notes.String

	var err error
	if h.StartDate, err = parseDate(start); err != nil {
		return hatchings.Hatching{}, fmt.Errorf("hatching %s startDate: %w", h.ID, err)
	}
	if h.ExpectedHatchDate, err = parseDate(expected); err != nil {
		return hatchings.Hatching{}, fmt.Errorf("hatching %s expectedHatchDate: %w", h.ID, err)
	}
	if h.ActualHatchDate, err = fromNullDate(actual); err != nil {
		return hatchings.Hatching{}, fmt.Errorf("hatching %s actualHatchDate: %w", h.ID, err)
	}
	if h.CreatedAt, err = parseTimestamp(created); err != nil {
		return hatchings.Hatching{}, fmt.Errorf("hatching %s createdAt: %w", h.ID, err)
	}
	if h.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return hatchings.Hatching{}, fmt.Errorf("hatching %s updatedAt: %w", h.ID, err)
	}
	return h, nil
}
