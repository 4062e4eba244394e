package animals

import (
	"context"
	"errors"
	"testing"
	"time"

	"husbandry-tracker/internal/domain/lifecycle"
)

type testRepo struct {
	byID map[string]Animal
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Animal{}}
}

func (r *testRepo) Create(_ context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) Update(_ context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *testRepo) List(_ context.Context) ([]Animal, error) {
	out := make([]Animal, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, nil, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	svc.newID = func() string { return "QQ-0001" }
	return svc, repo
}

func dob(s string) *time.Time {
	t, _ := lifecycle.ParseDate(s)
	return &t
}

func TestCreate_DefaultsAndGeneratedID(t *testing.T) {
	svc, repo := newTestService()

	a, err := svc.Create(context.Background(), CreateInput{
		Name:        "  Pip ",
		Species:     "Quail",
		DateOfBirth: dob("2024-02-01"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID != "QQ-0001" {
		t.Fatalf("expected generated id, got %q", a.ID)
	}
	if a.Name != "Pip" || a.Species != SpeciesQuail {
		t.Fatalf("expected trimmed/normalized fields, got %+v", a)
	}
	if a.Status != lifecycle.AnimalActive {
		t.Fatalf("expected default status Active, got %q", a.Status)
	}
	if a.Sex != SexUnspecified {
		t.Fatalf("expected unspecified sex, got %q", a.Sex)
	}
	if _, ok := repo.byID["QQ-0001"]; !ok {
		t.Fatalf("expected animal persisted")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []CreateInput{
		{Species: "rabbit", DateOfBirth: dob("2024-01-01")},
		{Name: "x", DateOfBirth: dob("2024-01-01")},
		{Name: "x", Species: "rabbit"},
		{Name: "x", Species: "rabbit", DateOfBirth: dob("2024-01-01"), Status: "Sleeping"},
		{Name: "x", Species: "rabbit", DateOfBirth: dob("2024-01-01"), Sex: "both"},
	}
	for i, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestUpdate_PartialAndNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{ID: "AB-1234", Name: "Doe", Species: "rabbit", Sex: "female", DateOfBirth: dob("2023-01-01")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	status := "Breeder"
	updated, err := svc.Update(ctx, a.ID, UpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != lifecycle.AnimalBreeder || updated.Name != "Doe" || updated.Sex != SexFemale {
		t.Fatalf("expected only status to change, got %+v", updated)
	}

	empty := " "
	if _, err := svc.Update(ctx, a.ID, UpdateInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := svc.Update(ctx, "ZZ-0000", UpdateInput{Status: &status}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "ZZ-0000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestEligible(t *testing.T) {
	svc, repo := newTestService()

	repo.byID["m"] = Animal{ID: "m", Sex: SexMale, Status: lifecycle.AnimalBreeder}
	repo.byID["f"] = Animal{ID: "f", Sex: SexFemale, Status: lifecycle.AnimalActive}
	repo.byID["u"] = Animal{ID: "u", Status: lifecycle.AnimalActive}
	repo.byID["r"] = Animal{ID: "r", Sex: SexMale, Status: lifecycle.AnimalRetired}

	males, err := svc.Eligible(context.Background(), SexMale)
	if err != nil {
		t.Fatalf("eligible: %v", err)
	}
	got := map[string]bool{}
	for _, a := range males {
		got[a.ID] = true
	}
	if len(got) != 2 || !got["m"] || !got["u"] {
		t.Fatalf("expected m and u, got %v", got)
	}

	if _, err := svc.Eligible(context.Background(), SexUnspecified); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty role, got %v", err)
	}
}

type fakeImages struct {
	removed []string
	err     error
}

func (f *fakeImages) Remove(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return f.err
}

func TestDeleteAndReplace_RemoveUploadedImage(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo()
	images := &fakeImages{}
	svc := NewService(repo, images, nil)

	repo.byID["a"] = Animal{ID: "a", Name: "Bun", Species: SpeciesRabbit, Image: "/uploads/image-1.png"}
	repo.byID["b"] = Animal{ID: "b", Name: "Hop", Species: SpeciesRabbit}

	next := "/uploads/image-2.png"
	if _, err := svc.Update(ctx, "a", UpdateInput{Image: &next}); err != nil {
		t.Fatalf("update: %v", err)
	}
	notes := "calm"
	if _, err := svc.Update(ctx, "a", UpdateInput{Notes: &notes}); err != nil {
		t.Fatalf("update notes: %v", err)
	}
	if err := svc.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete without image: %v", err)
	}

	want := []string{"/uploads/image-1.png", "/uploads/image-2.png"}
	if len(images.removed) != len(want) || images.removed[0] != want[0] || images.removed[1] != want[1] {
		t.Fatalf("removed = %v, want %v", images.removed, want)
	}
}

func TestDelete_ImageFailureDoesNotFailDelete(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, &fakeImages{err: errors.New("bucket down")}, nil)
	repo.byID["a"] = Animal{ID: "a", Image: "/uploads/image-1.png"}

	if err := svc.Delete(context.Background(), "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.byID["a"]; ok {
		t.Fatal("animal still stored")
	}
}
