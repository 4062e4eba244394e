package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"husbandry-tracker/internal/domain/breedings"
	"husbandry-tracker/internal/domain/lifecycle"
)

type BreedingsRepo struct {
	*Store
}

func NewBreedingsRepo(s *Store) *BreedingsRepo {
	return &BreedingsRepo{Store: s}
}

// Los padres se resuelven con LEFT JOIN: una cruza sobrevive al borrado de sus animales.
const breedingSelect = `
	SELECT
		b.id, b.maleId, b.femaleId,
		b.breedingDate, b.gestationDays, b.expectedDate, b.actualDate,
		b.status, b.offspring, b.notes,
		b.createdAt, b.updatedAt,
		m.name, m.species,
		f.name, f.species
	FROM breedings b
	LEFT JOIN animals m ON b.maleId = m.id
	LEFT JOIN animals f ON b.femaleId = f.id
`

func (r *BreedingsRepo) Create(ctx context.Context, b breedings.Breeding) error {
	_, err := r.exec(ctx, `
		INSERT INTO breedings (
			id, maleId, femaleId,
			breedingDate, gestationDays, expectedDate, actualDate,
			status, offspring, notes,
			createdAt, updatedAt
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		b.ID,
		b.MaleID,
		b.FemaleID,
		formatDate(b.BreedingDate),
		b.GestationDays,
		formatDate(b.ExpectedDate),
		toNullDate(b.ActualDate),
		string(b.Status),
		b.Offspring,
		b.Notes,
		formatTimestamp(b.CreatedAt),
		formatTimestamp(b.UpdatedAt),
	)
	return err
}

func (r *BreedingsRepo) GetByID(ctx context.Context, id string) (breedings.View, error) {
	v, err := scanBreeding(r.queryRow(ctx, breedingSelect+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return breedings.View{}, breedings.ErrNotFound
	}
	return v, err
}

func (r *BreedingsRepo) ListWithAnimalNames(ctx context.Context) ([]breedings.View, error) {
	rows, err := r.query(ctx, breedingSelect+` ORDER BY b.createdAt DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breedings.View, 0)
	for rows.Next() {
		v, err := scanBreeding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *BreedingsRepo) UpdateOutcome(ctx context.Context, b breedings.Breeding) error {
	return r.execAffecting(ctx, breedings.ErrNotFound, `
		UPDATE breedings
		SET
			status = ?,
			actualDate = ?,
			offspring = ?,
			notes = ?,
			updatedAt = ?
		WHERE id = ?
	`,
		string(b.Status),
		toNullDate(b.ActualDate),
		b.Offspring,
		b.Notes,
		formatTimestamp(b.UpdatedAt),
		b.ID,
	)
}

func (r *BreedingsRepo) Delete(ctx context.Context, id string) error {
	return r.execAffecting(ctx, breedings.ErrNotFound, `DELETE FROM breedings WHERE id = ?`, id)
}

func scanBreeding(sc scanner) (breedings.View, error) {
	var (
		v                      breedings.View
		bred, created, updated string
		expected, actual       sql.NullString
		status, notes          sql.NullString
		gestation, offspring   sql.NullInt64
		mName, mSpecies        sql.NullString
		fName, fSpecies        sql.NullString
	)
	if err := sc.Scan(
		&v.ID,
		&v.MaleID,
		&v.FemaleID,
		&bred,
		&gestation,
		&expected,
		&actual,
		&status,
		&offspring,
		&notes,
		&created,
		&updated,
		&mName,
		&mSpecies,
		&fName,
		&fSpecies,
	); err != nil {
		return breedings.View{}, err
	}

	v.GestationDays = lifecycle.DefaultGestationDays
	if gestation.Valid {
		v.GestationDays = int(gestation.Int64)
	}
	v.Offspring = int(offspring.Int64)
	v.Status = lifecycle.BreedingPending
	if status.Valid && status.String != "" {
		v.Status = lifecycle.BreedingStatus(status.String)
	}
	v.Notes = notes.String

	var err error
	if v.BreedingDate, err = parseDate(bred); err != nil {
		return breedings.View{}, fmt.Errorf("breeding %s breedingDate: %w", v.ID, err)
	}
	if expected.Valid && expected.String != "" {
		if v.ExpectedDate, err = parseDate(expected.String); err != nil {
			return breedings.View{}, fmt.Errorf("breeding %s expectedDate: %w", v.ID, err)
		}
	} else {
		// filas viejas sin expectedDate
		v.ExpectedDate = lifecycle.ComputeExpectedDate(v.BreedingDate, v.GestationDays)
	}
	if v.ActualDate, err = fromNullDate(actual); err != nil {
		return breedings.View{}, fmt.Errorf("breeding %s actualDate: %w", v.ID, err)
	}
	if v.CreatedAt, err = parseTimestamp(created); err != nil {
		return breedings.View{}, fmt.Errorf("breeding %s createdAt: %w", v.ID, err)
	}
	if v.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return breedings.View{}, fmt.Errorf("breeding %s updatedAt: %w", v.ID, err)
	}

	v.Male = breedings.ParentInfo{Name: fromNullString(mName), Species: fromNullString(mSpecies)}
	v.Female = breedings.ParentInfo{Name: fromNullString(fName), Species: fromNullString(fSpecies)}
	return v, nil
}
