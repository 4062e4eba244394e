package hatchings

import (
	"time"

	"husbandry-tracker/internal/domain/lifecycle"
)

// Hatching es un lote de huevos en incubación.
type Hatching struct {
	ID   string
	Name string

	TotalEggs         int
	StartDate         time.Time
	IncubationDays    int
	ExpectedHatchDate time.Time // fijada al crear
	ActualHatchDate   *time.Time

	// HatchedEggs <= TotalEggs solo se controla en la UI.
	HatchedEggs int
	Status      lifecycle.HatchingStatus

	Temperature *float64 // °C
	Humidity    *float64 // %

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Progress struct {
	DaysRemaining int
	Urgency       lifecycle.Urgency
	HatchRate     float64
}

func ProgressAt(h Hatching, now time.Time) Progress {
	days := lifecycle.DaysRemaining(h.ExpectedHatchDate, now)
	return Progress{
		DaysRemaining: days,
		Urgency:       lifecycle.Classify(days, lifecycle.HatchingDueSoonDays, h.Status.Terminal()),
		HatchRate:     lifecycle.HatchRate(h.HatchedEggs, h.TotalEggs),
	}
}
