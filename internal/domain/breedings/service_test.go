package breedings

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"husbandry-tracker/internal/domain/lifecycle"
	"husbandry-tracker/internal/platform/logger"
)

type testRepo struct {
	byID map[string]Breeding
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Breeding{}}
}

func (r *testRepo) Create(_ context.Context, b Breeding) error {
	r.byID[b.ID] = b
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (View, error) {
	b, ok := r.byID[id]
	if !ok {
		return View{}, ErrNotFound
	}
	return View{Breeding: b}, nil
}

func (r *testRepo) ListWithAnimalNames(_ context.Context) ([]View, error) {
	out := make([]View, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, View{Breeding: b})
	}
	return out, nil
}

func (r *testRepo) UpdateOutcome(_ context.Context, b Breeding) error {
	cur, ok := r.byID[b.ID]
	if !ok {
		return ErrNotFound
	}
	cur.Status = b.Status
	cur.ActualDate = b.ActualDate
	cur.Offspring = b.Offspring
	cur.Notes = b.Notes
	cur.UpdatedAt = b.UpdatedAt
	r.byID[b.ID] = cur
	return nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var now = time.Date(2024, 1, 11, 9, 30, 0, 0, time.UTC)

func newTestService(out *bytes.Buffer) (*Service, *testRepo) {
	repo := newTestRepo()
	log := logger.Nop()
	if out != nil {
		log = logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: out})
	}
	svc := NewService(repo, log)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func day(s string) *time.Time {
	t, _ := lifecycle.ParseDate(s)
	return &t
}

func TestCreate_ComputesExpectedDate(t *testing.T) {
	svc, _ := newTestService(nil)

	b, err := svc.Create(context.Background(), CreateInput{
		MaleID: "AB-0001", FemaleID: "AB-0002", BreedingDate: day("2024-01-01"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.GestationDays != lifecycle.DefaultGestationDays {
		t.Fatalf("expected default gestation, got %d", b.GestationDays)
	}
	if got := lifecycle.FormatDate(b.ExpectedDate); got != "2024-02-01" {
		t.Fatalf("expected 2024-02-01, got %s", got)
	}
	if b.Status != lifecycle.BreedingPending {
		t.Fatalf("expected pending, got %s", b.Status)
	}
	if b.ID != lifecycle.NewRecordID(now) {
		t.Fatalf("expected millis id, got %s", b.ID)
	}

	// 10 días después de la cruza faltan 21
	p := svc.Progress(b)
	if p.DaysRemaining != 21 || p.Urgency != lifecycle.UrgencyOnTrack {
		t.Fatalf("unexpected progress: %+v", p)
	}
}

func TestCreate_SuppliedExpectedDateKeptAndLogged(t *testing.T) {
	var buf bytes.Buffer
	svc, _ := newTestService(&buf)

	b, err := svc.Create(context.Background(), CreateInput{
		MaleID: "m", FemaleID: "f", BreedingDate: day("2024-01-01"), ExpectedDate: day("2024-02-05"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := lifecycle.FormatDate(b.ExpectedDate); got != "2024-02-05" {
		t.Fatalf("expected client date kept, got %s", got)
	}
	if !strings.Contains(buf.String(), `"level":"WARN"`) || !strings.Contains(buf.String(), `"computed":"2024-02-01"`) {
		t.Fatalf("expected warn log with computed date, got %s", buf.String())
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	cases := []CreateInput{
		{FemaleID: "f", BreedingDate: day("2024-01-01")},
		{MaleID: "m", BreedingDate: day("2024-01-01")},
		{MaleID: "m", FemaleID: "f"},
		{MaleID: "m", FemaleID: "f", BreedingDate: day("2024-01-01"), GestationDays: -1},
		{MaleID: "m", FemaleID: "f", BreedingDate: day("2024-01-01"), GestationDays: 400},
	}
	for i, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestUpdate_OutcomeAndTransitions(t *testing.T) {
	var buf bytes.Buffer
	svc, repo := newTestService(&buf)
	ctx := context.Background()

	b, err := svc.Create(ctx, CreateInput{ID: "b1", MaleID: "m", FemaleID: "f", BreedingDate: day("2024-01-01")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	successful := "successful"
	offspring := 6
	_, err = svc.Update(ctx, b.ID, UpdateInput{
		Status:     &successful,
		Offspring:  &offspring,
		ActualDate: lifecycle.DatePatch{Present: true, Value: day("2024-02-02")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	stored := repo.byID["b1"]
	if stored.Status != lifecycle.BreedingSuccessful || stored.Offspring != 6 || stored.ActualDate == nil {
		t.Fatalf("unexpected stored breeding: %+v", stored)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no warnings for a valid transition, got %s", buf.String())
	}

	// successful -> pending se acepta pero se loguea
	pending := "pending"
	if _, err := svc.Update(ctx, b.ID, UpdateInput{Status: &pending}); err != nil {
		t.Fatalf("update back to pending: %v", err)
	}
	if !strings.Contains(buf.String(), "out-of-order breeding status transition") {
		t.Fatalf("expected transition warning, got %s", buf.String())
	}

	// ausente no toca la fecha; null la limpia
	if _, err := svc.Update(ctx, b.ID, UpdateInput{}); err != nil {
		t.Fatalf("noop update: %v", err)
	}
	if repo.byID["b1"].ActualDate == nil {
		t.Fatalf("absent actualDate must keep the stored value")
	}
	if _, err := svc.Update(ctx, b.ID, UpdateInput{ActualDate: lifecycle.DatePatch{Present: true}}); err != nil {
		t.Fatalf("clear update: %v", err)
	}
	if repo.byID["b1"].ActualDate != nil {
		t.Fatalf("null actualDate must clear the stored value")
	}

	bogus := "maybe"
	if _, err := svc.Update(ctx, b.ID, UpdateInput{Status: &bogus}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	negative := -1
	if _, err := svc.Update(ctx, b.ID, UpdateInput{Offspring: &negative}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative offspring, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", UpdateInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParentInfoDisplay(t *testing.T) {
	name := "Buck"
	empty := ""
	if got := (ParentInfo{Name: &name}).DisplayName(); got != "Buck" {
		t.Fatalf("expected Buck, got %s", got)
	}
	if got := (ParentInfo{}).DisplayName(); got != UnknownName {
		t.Fatalf("expected %s, got %s", UnknownName, got)
	}
	if got := (ParentInfo{Species: &empty}).DisplaySpecies(); got != UnknownSpecies {
		t.Fatalf("expected %s, got %s", UnknownSpecies, got)
	}
}
