package sqlstore_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"husbandry-tracker/internal/adapters/storage/sqlite"
	"husbandry-tracker/internal/adapters/storage/sqlstore"
	"husbandry-tracker/internal/domain/animals"
	"husbandry-tracker/internal/domain/breedings"
	"husbandry-tracker/internal/domain/hatchings"
	"husbandry-tracker/internal/domain/lifecycle"
	"husbandry-tracker/internal/domain/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	s, _ := newStoreWithDB(t)
	return s
}

// newStoreWithDB expone la conexión para sembrar filas que los repos no escriben.
func newStoreWithDB(t *testing.T) (*sqlstore.Store, *sql.DB) {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := sqlstore.New(db, sqlstore.DialectSQLite)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	return s, db
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

var ts = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func TestAnimalsRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := sqlstore.NewAnimalsRepo(newStore(t))

	a := animals.Animal{
		ID:          "AB-1234",
		Name:        "Thumper",
		Species:     animals.SpeciesRabbit,
		Breed:       "Rex",
		Sex:         animals.SexMale,
		DateOfBirth: date("2023-05-01"),
		Status:      lifecycle.AnimalBreeder,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, "AB-1234")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	a.Name = "Thumper II"
	a.UpdatedAt = ts.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, a))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Thumper II", list[0].Name)

	require.NoError(t, repo.Delete(ctx, "AB-1234"))
	_, err = repo.GetByID(ctx, "AB-1234")
	assert.ErrorIs(t, err, animals.ErrNotFound)
}

func TestAnimalsRepo_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := sqlstore.NewAnimalsRepo(newStore(t))

	for i, id := range []string{"AA-0001", "AA-0002", "AA-0003"} {
		created := ts.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, animals.Animal{
			ID: id, Name: id, Species: animals.SpeciesQuail,
			DateOfBirth: date("2024-01-01"), Status: lifecycle.AnimalActive,
			CreatedAt: created, UpdatedAt: created,
		}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "AA-0003", list[0].ID)
	assert.Equal(t, "AA-0001", list[2].ID)
}

func TestNotFoundOnMissingRows(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	assert.ErrorIs(t, sqlstore.NewAnimalsRepo(s).Update(ctx, animals.Animal{ID: "ZZ-0000"}), animals.ErrNotFound)
	assert.ErrorIs(t, sqlstore.NewAnimalsRepo(s).Delete(ctx, "ZZ-0000"), animals.ErrNotFound)
	assert.ErrorIs(t, sqlstore.NewBreedingsRepo(s).UpdateOutcome(ctx, breedings.Breeding{ID: "nope"}), breedings.ErrNotFound)
	assert.ErrorIs(t, sqlstore.NewBreedingsRepo(s).Delete(ctx, "nope"), breedings.ErrNotFound)
	assert.ErrorIs(t, sqlstore.NewHatchingsRepo(s).UpdateProgress(ctx, hatchings.Hatching{ID: "nope"}), hatchings.ErrNotFound)
	assert.ErrorIs(t, sqlstore.NewHatchingsRepo(s).Delete(ctx, "nope"), hatchings.ErrNotFound)

	_, err := sqlstore.NewBreedingsRepo(s).GetByID(ctx, "nope")
	assert.ErrorIs(t, err, breedings.ErrNotFound)
	_, err = sqlstore.NewHatchingsRepo(s).GetByID(ctx, "nope")
	assert.ErrorIs(t, err, hatchings.ErrNotFound)
}

func TestBreedingsRepo_JoinSurvivesDeletedParent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	ar := sqlstore.NewAnimalsRepo(s)
	br := sqlstore.NewBreedingsRepo(s)

	for _, a := range []animals.Animal{
		{ID: "AB-0001", Name: "Buck", Species: animals.SpeciesRabbit, Sex: animals.SexMale},
		{ID: "AB-0002", Name: "Doe", Species: animals.SpeciesRabbit, Sex: animals.SexFemale},
	} {
		a.DateOfBirth = date("2023-01-01")
		a.Status = lifecycle.AnimalBreeder
		a.CreatedAt, a.UpdatedAt = ts, ts
		require.NoError(t, ar.Create(ctx, a))
	}

	b := breedings.Breeding{
		ID:            "1704067200000",
		MaleID:        "AB-0001",
		FemaleID:      "AB-0002",
		BreedingDate:  date("2024-01-01"),
		GestationDays: 31,
		ExpectedDate:  date("2024-02-01"),
		Status:        lifecycle.BreedingPending,
		CreatedAt:     ts,
		UpdatedAt:     ts,
	}
	require.NoError(t, br.Create(ctx, b))

	v, err := br.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buck", v.Male.DisplayName())
	assert.Equal(t, "rabbit", v.Female.DisplaySpecies())

	require.NoError(t, ar.Delete(ctx, "AB-0001"))

	list, err := br.ListWithAnimalNames(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].Male.Name)
	assert.Equal(t, breedings.UnknownName, list[0].Male.DisplayName())
	assert.Equal(t, breedings.UnknownSpecies, list[0].Male.DisplaySpecies())
	assert.Equal(t, "Doe", list[0].Female.DisplayName())
	assert.Equal(t, "AB-0001", list[0].MaleID)
}

func TestBreedingsRepo_UpdateOutcomeOnlyTouchesOutcome(t *testing.T) {
	ctx := context.Background()
	br := sqlstore.NewBreedingsRepo(newStore(t))

	b := breedings.Breeding{
		ID: "b1", MaleID: "m", FemaleID: "f",
		BreedingDate: date("2024-01-01"), GestationDays: 31, ExpectedDate: date("2024-02-01"),
		Status: lifecycle.BreedingPending, CreatedAt: ts, UpdatedAt: ts,
	}
	require.NoError(t, br.Create(ctx, b))

	actual := date("2024-02-02")
	changed := b
	changed.Status = lifecycle.BreedingSuccessful
	changed.ActualDate = &actual
	changed.Offspring = 6
	changed.ExpectedDate = date("2030-01-01") // no se persiste
	changed.UpdatedAt = ts.Add(24 * time.Hour)
	require.NoError(t, br.UpdateOutcome(ctx, changed))

	v, err := br.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, lifecycle.BreedingSuccessful, v.Status)
	assert.Equal(t, 6, v.Offspring)
	require.NotNil(t, v.ActualDate)
	assert.Equal(t, actual, *v.ActualDate)
	assert.Equal(t, date("2024-02-01"), v.ExpectedDate)
	assert.Equal(t, ts, v.CreatedAt)
	assert.Equal(t, ts.Add(24*time.Hour), v.UpdatedAt)

	changed.ActualDate = nil
	require.NoError(t, br.UpdateOutcome(ctx, changed))
	v, err = br.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, v.ActualDate)
}

func TestHatchingsRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	hr := sqlstore.NewHatchingsRepo(newStore(t))

	temp := 37.5
	h := hatchings.Hatching{
		ID: "h1", Name: "Batch A", TotalEggs: 12,
		StartDate: date("2024-03-01"), IncubationDays: 21, ExpectedHatchDate: date("2024-03-22"),
		Status: lifecycle.HatchingIncubating, Temperature: &temp,
		CreatedAt: ts, UpdatedAt: ts,
	}
	require.NoError(t, hr.Create(ctx, h))

	got, err := hr.GetByID(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, h, got)
	assert.Nil(t, got.Humidity)

	hum := 55.0
	got.Status = lifecycle.HatchingCompleted
	got.HatchedEggs = 10
	got.Humidity = &hum
	got.UpdatedAt = ts.Add(time.Hour)
	require.NoError(t, hr.UpdateProgress(ctx, got))

	list, err := hr.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 10, list[0].HatchedEggs)
	assert.Equal(t, lifecycle.HatchingCompleted, list[0].Status)
	require.NotNil(t, list[0].Humidity)
	assert.InDelta(t, 55.0, *list[0].Humidity, 0.0001)
}

func TestMigrate_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Migrate(ctx))

	added, err := s.EnsureColumn(ctx, "breedings", "gestationDays", "INTEGER DEFAULT 31")
	require.NoError(t, err)
	assert.False(t, added)
}

func TestEnsureColumn_LegacyTable(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "legacy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// esquema anterior a gestationDays, con una fila existente
	_, err = db.Exec(`CREATE TABLE breedings (
		id TEXT PRIMARY KEY, maleId TEXT NOT NULL, femaleId TEXT NOT NULL,
		breedingDate TEXT NOT NULL, expectedDate TEXT, actualDate TEXT,
		status TEXT DEFAULT 'pending', notes TEXT, offspring INTEGER DEFAULT 0,
		createdAt TEXT NOT NULL, updatedAt TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO breedings (id, maleId, femaleId, breedingDate, createdAt, updatedAt)
		VALUES ('old', 'm', 'f', '2024-01-01', '2024-01-01T00:00:00.000Z', '2024-01-01T00:00:00.000Z')`)
	require.NoError(t, err)

	s, err := sqlstore.New(db, sqlstore.DialectSQLite)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(ctx))

	v, err := sqlstore.NewBreedingsRepo(s).GetByID(ctx, "old")
	require.NoError(t, err)
	assert.Equal(t, 31, v.GestationDays)
	assert.Equal(t, date("2024-02-01"), v.ExpectedDate)
	assert.Equal(t, lifecycle.BreedingPending, v.Status)
}

func TestStatsRepo_NullStatus(t *testing.T) {
	ctx := context.Background()
	s, db := newStoreWithDB(t)

	// filas viejas con status NULL o vacío
	_, err := db.Exec(`INSERT INTO breedings (id, maleId, femaleId, breedingDate, status, createdAt, updatedAt) VALUES
		('b1', 'm', 'f', '2024-01-01', NULL, '2024-01-01T00:00:00.000Z', '2024-01-01T00:00:00.000Z'),
		('b2', 'm', 'f', '2024-01-02', '', '2024-01-02T00:00:00.000Z', '2024-01-02T00:00:00.000Z'),
		('b3', 'm', 'f', '2024-01-03', 'pending', '2024-01-03T00:00:00.000Z', '2024-01-03T00:00:00.000Z'),
		('b4', 'm', 'f', '2024-01-04', 'failed', '2024-01-04T00:00:00.000Z', '2024-01-04T00:00:00.000Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO hatchings (id, name, totalEggs, startDate, incubationDays, expectedHatchDate, status, createdAt, updatedAt)
		VALUES ('h1', 'batch', 12, '2024-03-01', 21, '2024-03-22', NULL, '2024-03-01T00:00:00.000Z', '2024-03-01T00:00:00.000Z')`)
	require.NoError(t, err)

	list, err := sqlstore.NewBreedingsRepo(s).ListWithAnimalNames(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	repo := sqlstore.NewStatsRepo(s)
	counts, err := repo.StatusCounts(ctx, stats.EntityBreedings)
	require.NoError(t, err)
	assert.Equal(t, []stats.StatusCount{
		{Status: "failed", Count: 1},
		{Status: "pending", Count: 3},
	}, counts)

	counts, err = repo.StatusCounts(ctx, stats.EntityHatchings)
	require.NoError(t, err)
	assert.Equal(t, []stats.StatusCount{{Status: "incubating", Count: 1}}, counts)
}

func TestStatsRepo_StatusCounts(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	ar := sqlstore.NewAnimalsRepo(s)

	for i, st := range []lifecycle.AnimalStatus{lifecycle.AnimalActive, lifecycle.AnimalActive, lifecycle.AnimalRetired} {
		require.NoError(t, ar.Create(ctx, animals.Animal{
			ID: lifecycle.NewAnimalID(), Name: "x", Species: animals.SpeciesChicken,
			DateOfBirth: date("2024-01-01"), Status: st,
			CreatedAt: ts.Add(time.Duration(i) * time.Second), UpdatedAt: ts,
		}))
	}

	counts, err := sqlstore.NewStatsRepo(s).StatusCounts(ctx, stats.EntityAnimals)
	require.NoError(t, err)
	assert.Equal(t, []stats.StatusCount{
		{Status: "Active", Count: 2},
		{Status: "Retired", Count: 1},
	}, counts)

	empty, err := sqlstore.NewStatsRepo(s).StatusCounts(ctx, stats.EntityHatchings)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNew_UnknownDialect(t *testing.T) {
	_, err := sqlstore.New(nil, "oracle")
	assert.Error(t, err)
}
