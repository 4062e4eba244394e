package clientcache

import (
	"time"

	"husbandry-tracker/internal/domain/breedings"
	"husbandry-tracker/internal/domain/lifecycle"
)

// Entity es el segmento de la colección en /api/{entity}.
type Entity string

const (
	EntityAnimals   Entity = "animals"
	EntityBreedings Entity = "breedings"
	EntityHatchings Entity = "hatchings"
)

func (e Entity) Valid() bool {
	return e == EntityAnimals || e == EntityBreedings || e == EntityHatchings
}

// Los records replican el JSON del API tal cual; las fechas viajan como YYYY-MM-DD.

type Animal struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	Breed       string    `json:"breed"`
	Color       string    `json:"color"`
	Sex         string    `json:"sex,omitempty"`
	DateOfBirth string    `json:"dateOfBirth"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// eligibleFor replica la regla del servidor: Breeder/Active y sexo igual al rol o sin cargar.
func (a Animal) eligibleFor(sex string) bool {
	if !lifecycle.AnimalStatus(a.Status).CanBreed() {
		return false
	}
	return a.Sex == "" || a.Sex == sex
}

type Breeding struct {
	ID            string    `json:"id"`
	MaleID        string    `json:"maleId"`
	FemaleID      string    `json:"femaleId"`
	BreedingDate  string    `json:"breedingDate"`
	GestationDays int       `json:"gestationDays"`
	ExpectedDate  string    `json:"expectedDate"`
	ActualDate    *string   `json:"actualDate"`
	Status        string    `json:"status"`
	Offspring     int       `json:"offspring"`
	Notes         string    `json:"notes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	MaleName      *string `json:"maleName"`
	MaleSpecies   *string `json:"maleSpecies"`
	FemaleName    *string `json:"femaleName"`
	FemaleSpecies *string `json:"femaleSpecies"`

	DaysRemaining int    `json:"daysRemaining"`
	Urgency       string `json:"urgency"`
}

func (b Breeding) MaleDisplayName() string {
	return breedings.ParentInfo{Name: b.MaleName}.DisplayName()
}

func (b Breeding) MaleDisplaySpecies() string {
	return breedings.ParentInfo{Species: b.MaleSpecies}.DisplaySpecies()
}

func (b Breeding) FemaleDisplayName() string {
	return breedings.ParentInfo{Name: b.FemaleName}.DisplayName()
}

func (b Breeding) FemaleDisplaySpecies() string {
	return breedings.ParentInfo{Species: b.FemaleSpecies}.DisplaySpecies()
}

type Hatching struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	TotalEggs         int       `json:"totalEggs"`
	StartDate         string    `json:"startDate"`
	IncubationDays    int       `json:"incubationDays"`
	ExpectedHatchDate string    `json:"expectedHatchDate"`
	ActualHatchDate   *string   `json:"actualHatchDate"`
	HatchedEggs       int       `json:"hatchedEggs"`
	Status            string    `json:"status"`
	Temperature       *float64  `json:"temperature"`
	Humidity          *float64  `json:"humidity"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	HatchRate     float64 `json:"hatchRate"`
	DaysRemaining int     `json:"daysRemaining"`
	Urgency       string  `json:"urgency"`
}

// Snapshot es la vista completa; también es el formato del archivo de respaldo.
type Snapshot struct {
	Animals   []Animal   `json:"animals"`
	Breedings []Breeding `json:"breedings"`
	Hatchings []Hatching `json:"hatchings"`
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{
		Animals:   append([]Animal(nil), s.Animals...),
		Breedings: append([]Breeding(nil), s.Breedings...),
		Hatchings: append([]Hatching(nil), s.Hatchings...),
	}
}

func (s Snapshot) has(e Entity, id string) bool {
	switch e {
	case EntityAnimals:
		for _, a := range s.Animals {
			if a.ID == id {
				return true
			}
		}
	case EntityBreedings:
		for _, b := range s.Breedings {
			if b.ID == id {
				return true
			}
		}
	case EntityHatchings:
		for _, h := range s.Hatchings {
			if h.ID == id {
				return true
			}
		}
	}
	return false
}

// refreshDerived recalcula los campos de lectura (días restantes, urgencia, tasa)
// y resuelve los nombres de los padres contra los animales locales.
func (s *Snapshot) refreshDerived(now time.Time) {
	byID := make(map[string]Animal, len(s.Animals))
	for _, a := range s.Animals {
		byID[a.ID] = a
	}

	for i := range s.Breedings {
		b := &s.Breedings[i]
		if expected, err := lifecycle.ParseDate(b.ExpectedDate); err == nil {
			b.DaysRemaining = lifecycle.DaysRemaining(expected, now)
			b.Urgency = string(lifecycle.Classify(b.DaysRemaining, lifecycle.BreedingDueSoonDays, lifecycle.BreedingStatus(b.Status).Terminal()))
		}
		b.MaleName, b.MaleSpecies = parentFields(byID, b.MaleID)
		b.FemaleName, b.FemaleSpecies = parentFields(byID, b.FemaleID)
	}

	for i := range s.Hatchings {
		h := &s.Hatchings[i]
		h.HatchRate = lifecycle.HatchRate(h.HatchedEggs, h.TotalEggs)
		if expected, err := lifecycle.ParseDate(h.ExpectedHatchDate); err == nil {
			h.DaysRemaining = lifecycle.DaysRemaining(expected, now)
			h.Urgency = string(lifecycle.Classify(h.DaysRemaining, lifecycle.HatchingDueSoonDays, lifecycle.HatchingStatus(h.Status).Terminal()))
		}
	}
}

func parentFields(byID map[string]Animal, id string) (*string, *string) {
	a, ok := byID[id]
	if !ok {
		return nil, nil
	}
	name, species := a.Name, a.Species
	return &name, &species
}
