package lifecycle

type AnimalStatus string

const (
	AnimalActive  AnimalStatus = "Active"
	AnimalBreeder AnimalStatus = "Breeder"
	AnimalRetired AnimalStatus = "Retired"
)

func (s AnimalStatus) Valid() bool {
	switch s {
	case AnimalActive, AnimalBreeder, AnimalRetired:
		return true
	}
	return false
}

// CanBreed: solo Breeder o Active entran en la selección de parejas.
func (s AnimalStatus) CanBreed() bool {
	return s == AnimalBreeder || s == AnimalActive
}

type BreedingStatus string

const (
	BreedingPending    BreedingStatus = "pending"
	BreedingSuccessful BreedingStatus = "successful"
	BreedingFailed     BreedingStatus = "failed"
)

func (s BreedingStatus) Valid() bool {
	switch s {
	case BreedingPending, BreedingSuccessful, BreedingFailed:
		return true
	}
	return false
}

func (s BreedingStatus) Terminal() bool {
	return s == BreedingSuccessful || s == BreedingFailed
}

type HatchingStatus string

const (
	HatchingIncubating HatchingStatus = "incubating"
	HatchingHatching   HatchingStatus = "hatching"
	HatchingCompleted  HatchingStatus = "completed"
)

func (s HatchingStatus) Valid() bool {
	switch s {
	case HatchingIncubating, HatchingHatching, HatchingCompleted:
		return true
	}
	return false
}

func (s HatchingStatus) Terminal() bool {
	return s == HatchingCompleted
}

var breedingTransitions = map[BreedingStatus][]BreedingStatus{
	BreedingPending: {BreedingSuccessful, BreedingFailed},
}

var hatchingTransitions = map[HatchingStatus][]HatchingStatus{
	HatchingIncubating: {HatchingHatching, HatchingCompleted},
	HatchingHatching:   {HatchingCompleted},
}

// BreedingTransitionAllowed consulta la tabla. Quedarse en el mismo estado siempre vale.
func BreedingTransitionAllowed(from, to BreedingStatus) bool {
	if from == to {
		return true
	}
	for _, next := range breedingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func HatchingTransitionAllowed(from, to HatchingStatus) bool {
	if from == to {
		return true
	}
	for _, next := range hatchingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Urgency es el estado derivado que la UI pinta en cada tarjeta.
type Urgency string

const (
	UrgencyOverdue Urgency = "overdue"
	UrgencyDueSoon Urgency = "due_soon"
	UrgencyOnTrack Urgency = "on_track"
	UrgencyClosed  Urgency = "closed"
)

func Classify(daysRemaining, dueSoonWindow int, closed bool) Urgency {
	switch {
	case closed:
		return UrgencyClosed
	case daysRemaining < 0:
		return UrgencyOverdue
	case daysRemaining <= dueSoonWindow:
		return UrgencyDueSoon
	default:
		return UrgencyOnTrack
	}
}
