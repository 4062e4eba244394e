package breedings

import (
	"context"
	"errors"
	"strings"
	"time"

	"husbandry-tracker/internal/domain/lifecycle"
	"husbandry-tracker/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("breeding not found")
)

type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "breedings"}),
		now:  time.Now,
	}
}

type CreateInput struct {
	ID            string // opcional; default = unix millis
	MaleID        string
	FemaleID      string
	BreedingDate  *time.Time
	GestationDays int        // 0 = default 31
	ExpectedDate  *time.Time // si viene del cliente se guarda tal cual
	Notes         string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Breeding, error) {
	maleID := strings.TrimSpace(in.MaleID)
	femaleID := strings.TrimSpace(in.FemaleID)
	if maleID == "" || femaleID == "" || in.BreedingDate == nil {
		return Breeding{}, ErrInvalidInput
	}

	gestation := in.GestationDays
	if gestation == 0 {
		gestation = lifecycle.DefaultGestationDays
	}
	if gestation < lifecycle.MinGestationDays || gestation > lifecycle.MaxGestationDays {
		return Breeding{}, ErrInvalidInput
	}

	now := s.now().UTC()
	bred := lifecycle.Truncate(*in.BreedingDate)

	// La fórmula vive en lifecycle; si el cliente ya la calculó aceptamos su valor.
	expected := lifecycle.ComputeExpectedDate(bred, gestation)
	if in.ExpectedDate != nil {
		supplied := lifecycle.Truncate(*in.ExpectedDate)
		if !supplied.Equal(expected) {
			s.log.Warn("client expectedDate differs from breedingDate+gestationDays", map[string]any{
				"supplied": lifecycle.FormatDate(supplied),
				"computed": lifecycle.FormatDate(expected),
			})
		}
		expected = supplied
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = lifecycle.NewRecordID(now)
	}

	b := Breeding{
		ID:            id,
		MaleID:        maleID,
		FemaleID:      femaleID,
		BreedingDate:  bred,
		GestationDays: gestation,
		ExpectedDate:  expected,
		Status:        lifecycle.BreedingPending,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Breeding{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (View, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return View{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]View, error) {
	return s.repo.ListWithAnimalNames(ctx)
}

// UpdateInput refleja el contrato de update: nunca breedingDate, maleId ni femaleId.
type UpdateInput struct {
	Status     *string
	ActualDate lifecycle.DatePatch
	Offspring  *int
	Notes      *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Breeding, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Breeding{}, err
	}
	b := current.Breeding

	if in.Status != nil {
		next := lifecycle.BreedingStatus(strings.TrimSpace(*in.Status))
		if !next.Valid() {
			return Breeding{}, ErrInvalidInput
		}
		if !lifecycle.BreedingTransitionAllowed(b.Status, next) {
			// Se acepta igual (compatibilidad), pero queda registrado.
			s.log.Warn("out-of-order breeding status transition", map[string]any{
				"breeding_id": b.ID,
				"from":        string(b.Status),
				"to":          string(next),
			})
		}
		b.Status = next
	}
	if in.Offspring != nil {
		if *in.Offspring < 0 {
			return Breeding{}, ErrInvalidInput
		}
		b.Offspring = *in.Offspring
	}
	if in.Notes != nil {
		b.Notes = strings.TrimSpace(*in.Notes)
	}
	b.ActualDate = in.ActualDate.Apply(b.ActualDate)
	b.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateOutcome(ctx, b); err != nil {
		return Breeding{}, err
	}
	return b, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Progress(b Breeding) Progress {
	return ProgressAt(b, s.now())
}
