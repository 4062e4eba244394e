// Package lifecycle contiene las derivaciones puras de fechas y estados que comparten
// cruzas (breedings) e incubaciones (hatchings). No hace I/O.
package lifecycle

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"

	DefaultGestationDays  = 31
	DefaultIncubationDays = 21

	MinGestationDays = 1
	MaxGestationDays = 365

	BreedingDueSoonDays = 3
	HatchingDueSoonDays = 2
)

var ErrInvalidDate = errors.New("invalid date")

// Truncate lleva t al día calendario (UTC, medianoche). La hora nunca influye.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ComputeExpectedDate = start + offsetDays días calendario.
// El caller valida offsetDays > 0 antes de llegar acá.
func ComputeExpectedDate(start time.Time, offsetDays int) time.Time {
	return Truncate(start).AddDate(0, 0, offsetDays)
}

// DaysRemaining devuelve días enteros entre now y target a granularidad de fecha.
// Negativo = vencido hace abs(valor) días.
func DaysRemaining(target, now time.Time) int {
	diff := Truncate(target).Sub(Truncate(now))
	return int(math.Ceil(diff.Hours() / 24))
}

// HatchRate = hatched/total*100 redondeado a 1 decimal; total 0 => 0.
func HatchRate(hatched, total int) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(hatched) / float64(total) * 100
	return math.Round(pct*10) / 10
}

// ParseDate acepta YYYY-MM-DD o RFC3339 (lo que manda un navegador con toISOString).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Truncate(t), nil
	}
	return time.Time{}, ErrInvalidDate
}

func FormatDate(t time.Time) string {
	return Truncate(t).Format(DateLayout)
}

// ParseDatePtr es el helper para columnas/campos opcionales.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}

// DatePatch distingue "no enviado" de "enviado en null" en updates parciales.
// Present=true con Value=nil limpia la fecha.
type DatePatch struct {
	Present bool
	Value   *time.Time
}

func (p DatePatch) Apply(current *time.Time) *time.Time {
	if !p.Present {
		return current
	}
	if p.Value == nil {
		return nil
	}
	t := Truncate(*p.Value)
	return &t
}
