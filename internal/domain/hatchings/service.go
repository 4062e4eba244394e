package hatchings

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
	ErrNotFound     = errors.New("hatching not found")
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
		log:  log.With(map[string]any{"component": "hatchings"}),
		now:  time.Now,
	}
}

type CreateInput struct {
	ID                string
	Name              string
	TotalEggs         int
	StartDate         *time.Time
	IncubationDays    int // 0 = default 21
	ExpectedHatchDate *time.Time
	Temperature       *float64
	Humidity          *float64
	Notes             string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Hatching, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.TotalEggs <= 0 || in.StartDate == nil {
		return Hatching{}, ErrInvalidInput
	}

	incubation := in.IncubationDays
	if incubation == 0 {
		incubation = lifecycle.DefaultIncubationDays
	}
	if incubation < 0 {
		return Hatching{}, ErrInvalidInput
	}

	now := s.now().UTC()
	start := lifecycle.Truncate(*in.StartDate)

	expected := lifecycle.ComputeExpectedDate(start, incubation)
	if in.ExpectedHatchDate != nil {
		supplied := lifecycle.Truncate(*in.ExpectedHatchDate)
		if !supplied.Equal(expected) {
			s.log.Warn("client expectedHatchDate differs from startDate+incubationDays", map[string]any{
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

	h := Hatching{
		ID:                id,
		Name:              name,
		TotalEggs:         in.TotalEggs,
		StartDate:         start,
		IncubationDays:    incubation,
		ExpectedHatchDate: expected,
		Status:            lifecycle.HatchingIncubating,
		Temperature:       in.Temperature,
		Humidity:          in.Humidity,
		Notes:             strings.TrimSpace(in.Notes),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return Hatching{}, err
	}
	return h, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Hatching, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Hatching{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Hatching, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Status          *string
	ActualHatchDate lifecycle.DatePatch
	HatchedEggs     *int
	Temperature     *float64
	Humidity        *float64
	Notes           *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Hatching, error) {
	h, err := s.GetByID(ctx, id)
	if err != nil {
		return Hatching{}, err
	}

	if in.Status != nil {
		next := lifecycle.HatchingStatus(strings.TrimSpace(*in.Status))
		if !next.Valid() {
			return Hatching{}, ErrInvalidInput
		}
		if !lifecycle.HatchingTransitionAllowed(h.Status, next) {
			s.log.Warn("out-of-order hatching status transition", map[string]any{
				"hatching_id": h.ID,
				"from":        string(h.Status),
				"to":          string(next),
			})
		}
		h.Status = next
	}
	if in.HatchedEggs != nil {
		if *in.HatchedEggs < 0 {
			return Hatching{}, ErrInvalidInput
		}
		if *in.HatchedEggs > h.TotalEggs {
			s.log.Warn("hatchedEggs exceeds totalEggs", map[string]any{
				"hatching_id": h.ID,
				"hatched":     *in.HatchedEggs,
				"total":       h.TotalEggs,
			})
		}
		h.HatchedEggs = *in.HatchedEggs
	}
	if in.Temperature != nil {
		h.Temperature = in.Temperature
	}
	if in.Humidity != nil {
		h.Humidity = in.Humidity
	}
	if in.Notes != nil {
		h.Notes = strings.TrimSpace(*in.Notes)
	}
	h.ActualHatchDate = in.ActualHatchDate.Apply(h.ActualHatchDate)
	h.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateProgress(ctx, h); err != nil {
		return Hatching{}, err
	}
	return h, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Progress(h Hatching) Progress {
	return ProgressAt(h, s.now())
}
