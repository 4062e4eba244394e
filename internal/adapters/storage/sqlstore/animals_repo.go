package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"husbandry-tracker/internal/domain/animals"
	"husbandry-tracker/internal/domain/lifecycle"
)

type AnimalsRepo struct {
	*Store
}

func NewAnimalsRepo(s *Store) *AnimalsRepo {
	return &AnimalsRepo{Store: s}
}

const animalColumns = `id, name, species, breed, color, sex, dateOfBirth, status, notes, image, createdAt, updatedAt`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.exec(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
	`,
		a.ID,
		a.Name,
		string(a.Species),
		a.Breed,
		a.Color,
		string(a.Sex),
		formatDate(a.DateOfBirth),
		string(a.Status),
		a.Notes,
		a.Image,
		formatTimestamp(a.CreatedAt),
		formatTimestamp(a.UpdatedAt),
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	return r.execAffecting(ctx, animals.ErrNotFound, `
		UPDATE animals
		SET
			name = ?,
			species = ?,
			breed = ?,
			color = ?,
			sex = ?,
			dateOfBirth = ?,
			status = ?,
			notes = ?,
			image = ?,
			updatedAt = ?
		WHERE id = ?
	`,
		a.Name,
		string(a.Species),
		a.Breed,
		a.Color,
		string(a.Sex),
		formatDate(a.DateOfBirth),
		string(a.Status),
		a.Notes,
		a.Image,
		formatTimestamp(a.UpdatedAt),
		a.ID,
	)
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	row := r.queryRow(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = ?`, id)
	a, err := scanAnimal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, err
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	rows, err := r.query(ctx, `SELECT `+animalColumns+` FROM animals ORDER BY createdAt DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	return r.execAffecting(ctx, animals.ErrNotFound, `DELETE FROM animals WHERE id = ?`, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(sc scanner) (animals.Animal, error) {
	var (
		a                     animals.Animal
		species, status       string
		sex, breed, color     sql.NullString
		notes, image          sql.NullString
		dob, created, updated string
	)
	if err := sc.Scan(
		&a.ID,
		&a.Name,
		&species,
		&breed,
		&color,
		&sex,
		&dob,
		&status,
		&notes,
		&image,
		&created,
		&updated,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Species = animals.Species(species)
	a.Sex = animals.Sex(sex.String)
	a.Status = lifecycle.AnimalStatus(status)
	a.Breed = breed.String
	a.Color = color.String
	a.Notes = notes.String
	a.Image = image.String

	var err error
	if a.DateOfBirth, err = parseDate(dob); err != nil {
		return animals.Animal{}, fmt.Errorf("animal %s dateOfBirth: %w", a.ID, err)
	}
	if a.CreatedAt, err = parseTimestamp(created); err != nil {
		return animals.Animal{}, fmt.Errorf("animal %s createdAt: %w", a.ID, err)
	}
	if a.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return animals.Animal{}, fmt.Errorf("animal %s updatedAt: %w", a.ID, err)
	}
	return a, nil
}
