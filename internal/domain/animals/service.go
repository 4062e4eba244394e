package animals

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
	ErrNotFound     = errors.New("animal not found")
)

// ImageRemover borra la imagen subida detrás de una URL de animal.image.
// URLs que no son uploads propios se ignoran.
type ImageRemover interface {
	Remove(ctx context.Context, url string) error
}

type Service struct {
	repo   Repository
	images ImageRemover
	log    logger.Logger
	now    func() time.Time
	newID  func() string
}

// images puede ser nil: sin media store las fotos no se limpian.
func NewService(repo Repository, images ImageRemover, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		images: images,
		log:    log.With(map[string]any{"component": "animals"}),
		now:    time.Now,
		newID:  lifecycle.NewAnimalID,
	}
}

type CreateInput struct {
	ID          string // opcional; si viene vacío lo genera el servidor
	Name        string
	Species     string
	Breed       string
	Color       string
	Sex         string
	DateOfBirth *time.Time
	Status      string
	Notes       string
	Image       string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Species) == "" {
		return Animal{}, ErrInvalidInput
	}
	if in.DateOfBirth == nil {
		return Animal{}, ErrInvalidInput
	}

	status := lifecycle.AnimalStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = lifecycle.AnimalActive
	}
	if !status.Valid() {
		return Animal{}, ErrInvalidInput
	}

	sex := Sex(strings.ToLower(strings.TrimSpace(in.Sex)))
	if !sex.Valid() {
		return Animal{}, ErrInvalidInput
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = s.newID()
	}

	now := s.now().UTC()
	a := Animal{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Species:     Species(strings.ToLower(strings.TrimSpace(in.Species))),
		Breed:       strings.TrimSpace(in.Breed),
		Color:       strings.TrimSpace(in.Color),
		Sex:         sex,
		DateOfBirth: lifecycle.Truncate(*in.DateOfBirth),
		Status:      status,
		Notes:       strings.TrimSpace(in.Notes),
		Image:       strings.TrimSpace(in.Image),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

// UpdateInput: punteros para update parcial real, nil = no tocar.
type UpdateInput struct {
	Name        *string
	Species     *string
	Breed       *string
	Color       *string
	Sex         *string
	DateOfBirth *time.Time
	Status      *string
	Notes       *string
	Image       *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Animal{}, ErrInvalidInput
		}
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Species != nil {
		if strings.TrimSpace(*in.Species) == "" {
			return Animal{}, ErrInvalidInput
		}
		current.Species = Species(strings.ToLower(strings.TrimSpace(*in.Species)))
	}
	if in.Breed != nil {
		current.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Color != nil {
		current.Color = strings.TrimSpace(*in.Color)
	}
	if in.Sex != nil {
		sex := Sex(strings.ToLower(strings.TrimSpace(*in.Sex)))
		if !sex.Valid() {
			return Animal{}, ErrInvalidInput
		}
		current.Sex = sex
	}
	if in.DateOfBirth != nil {
		current.DateOfBirth = lifecycle.Truncate(*in.DateOfBirth)
	}
	if in.Status != nil {
		st := lifecycle.AnimalStatus(strings.TrimSpace(*in.Status))
		if !st.Valid() {
			return Animal{}, ErrInvalidInput
		}
		current.Status = st
	}
	if in.Notes != nil {
		current.Notes = strings.TrimSpace(*in.Notes)
	}
	previousImage := current.Image
	if in.Image != nil {
		current.Image = strings.TrimSpace(*in.Image)
	}

	current.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, current); err != nil {
		return Animal{}, err
	}
	if previousImage != current.Image {
		s.removeImage(ctx, current.ID, previousImage)
	}
	return current, nil
}

// Delete no cascadea: las cruzas que apunten a este id quedan colgando y se muestran como "Unknown".
// La foto subida sí se borra.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeImage(ctx, id, current.Image)
	return nil
}

// removeImage no falla la operación: el registro ya quedó escrito.
func (s *Service) removeImage(ctx context.Context, animalID, url string) {
	if s.images == nil || url == "" {
		return
	}
	if err := s.images.Remove(ctx, url); err != nil {
		s.log.Warn("could not remove animal image", map[string]any{
			"animal": animalID,
			"image":  url,
			"error":  err.Error(),
		})
	}
}

// Eligible devuelve los candidatos para role (male/female) en una cruza.
func (s *Service) Eligible(ctx context.Context, role Sex) ([]Animal, error) {
	if role != SexMale && role != SexFemale {
		return nil, ErrInvalidInput
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Animal, 0, len(all))
	for _, a := range all {
		if EligibleFor(a, role) {
			out = append(out, a)
		}
	}
	return out, nil
}
