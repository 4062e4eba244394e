package animals

import (
	"time"

	"husbandry-tracker/internal/domain/lifecycle"
)

// Species define las especies soportadas.
// @Enum rabbit, quail, chicken, other
type Species string

const (
	SpeciesRabbit  Species = "rabbit"
	SpeciesQuail   Species = "quail"
	SpeciesChicken Species = "chicken"
	SpeciesOther   Species = "other"
)

// Sex define el sexo del animal. Vacío = sin especificar.
// @Enum male, female
type Sex string

const (
	SexMale        Sex = "male"
	SexFemale      Sex = "female"
	SexUnspecified Sex = ""
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale || s == SexUnspecified
}

// Animal representa un individuo del plantel.
type Animal struct {
	ID string // AB-1234, inmutable

	Name    string
	Species Species
	Breed   string
	Color   string
	Sex     Sex

	DateOfBirth time.Time
	Status      lifecycle.AnimalStatus

	Notes string
	Image string // URI o data inline, opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EligibleFor decide si el animal puede ocupar role en una cruza.
// Animales sin sexo cargado entran en ambos roles (compatibilidad con datos viejos).
func EligibleFor(a Animal, role Sex) bool {
	if !a.Status.CanBreed() {
		return false
	}
	return a.Sex == SexUnspecified || a.Sex == role
}
