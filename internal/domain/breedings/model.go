package breedings

import (
	"time"

	"husbandry-tracker/internal/domain/lifecycle"
)

// Breeding es un evento de cruza entre dos animales.
// MaleID/FemaleID no se validan contra animals al borrar: pueden quedar colgando.
type Breeding struct {
	ID       string
	MaleID   string
	FemaleID string

	BreedingDate  time.Time
	GestationDays int
	ExpectedDate  time.Time // fijada al crear, nunca se recalcula
	ActualDate    *time.Time

	Status    lifecycle.BreedingStatus
	Offspring int // solo tiene sentido con status successful

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParentInfo son las columnas del LEFT JOIN; nil cuando el animal ya no existe.
type ParentInfo struct {
	Name    *string
	Species *string
}

// View es la cruza con los nombres de los padres resueltos en lectura.
type View struct {
	Breeding
	Male   ParentInfo
	Female ParentInfo
}

const (
	UnknownName    = "Unknown"
	UnknownSpecies = "unknown"
)

func (p ParentInfo) DisplayName() string {
	if p.Name == nil || *p.Name == "" {
		return UnknownName
	}
	return *p.Name
}

func (p ParentInfo) DisplaySpecies() string {
	if p.Species == nil || *p.Species == "" {
		return UnknownSpecies
	}
	return *p.Species
}

// Progress son los derivados de lectura que pinta la UI.
type Progress struct {
	DaysRemaining int
	Urgency       lifecycle.Urgency
}

func ProgressAt(b Breeding, now time.Time) Progress {
	days := lifecycle.DaysRemaining(b.ExpectedDate, now)
	return Progress{
		DaysRemaining: days,
		Urgency:       lifecycle.Classify(days, lifecycle.BreedingDueSoonDays, b.Status.Terminal()),
	}
}
