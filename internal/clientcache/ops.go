package clientcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"husbandry-tracker/internal/domain/lifecycle"
)

var ErrInvalidInput = errors.New("invalid input")

type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
)

// Operation es una mutación encolada mientras el servidor no responde.
type Operation struct {
	Kind     OpKind         `json:"kind"`
	Entity   Entity         `json:"entity"`
	ID       string         `json:"id"`
	Fields   map[string]any `json:"fields,omitempty"`
	QueuedAt time.Time      `json:"queuedAt"`
}

func (o Operation) String() string {
	return fmt.Sprintf("%s %s/%s", o.Kind, o.Entity, o.ID)
}

// Campos que el servidor acepta en PUT por entidad.
var mutableFields = map[Entity]map[string]bool{
	EntityAnimals: {
		"name": true, "species": true, "breed": true, "color": true, "sex": true,
		"dateOfBirth": true, "status": true, "notes": true, "image": true,
	},
	EntityBreedings: {
		"status": true, "actualDate": true, "offspring": true, "notes": true,
	},
	EntityHatchings: {
		"status": true, "actualHatchDate": true, "hatchedEggs": true,
		"temperature": true, "humidity": true, "notes": true,
	},
}

// En estos campos null limpia; en el resto null es "no tocar".
var clearableFields = map[string]bool{
	"actualDate":      true,
	"actualHatchDate": true,
}

// prepareCreate completa id y derivados antes de mandar, para que la vista
// optimista, el respaldo y el servidor usen el mismo id y la misma fecha esperada.
func prepareCreate(e Entity, fields map[string]any, now time.Time) (map[string]any, error) {
	out := maps.Clone(fields)
	if out == nil {
		out = map[string]any{}
	}

	switch e {
	case EntityAnimals:
		if stringField(out, "name") == "" || stringField(out, "species") == "" || stringField(out, "dateOfBirth") == "" {
			return nil, ErrInvalidInput
		}
		if stringField(out, "id") == "" {
			out["id"] = lifecycle.NewAnimalID()
		}

	case EntityBreedings:
		if stringField(out, "maleId") == "" || stringField(out, "femaleId") == "" {
			return nil, ErrInvalidInput
		}
		bred, err := lifecycle.ParseDate(stringField(out, "breedingDate"))
		if err != nil {
			return nil, ErrInvalidInput
		}
		gestation, _ := intField(out, "gestationDays")
		if gestation == 0 {
			gestation = lifecycle.DefaultGestationDays
		}
		out["gestationDays"] = gestation
		if stringField(out, "expectedDate") == "" {
			out["expectedDate"] = lifecycle.FormatDate(lifecycle.ComputeExpectedDate(bred, gestation))
		}
		if stringField(out, "id") == "" {
			out["id"] = lifecycle.NewRecordID(now)
		}

	case EntityHatchings:
		if stringField(out, "name") == "" {
			return nil, ErrInvalidInput
		}
		if eggs, _ := intField(out, "totalEggs"); eggs <= 0 {
			return nil, ErrInvalidInput
		}
		start, err := lifecycle.ParseDate(stringField(out, "startDate"))
		if err != nil {
			return nil, ErrInvalidInput
		}
		incubation, _ := intField(out, "incubationDays")
		if incubation == 0 {
			incubation = lifecycle.DefaultIncubationDays
		}
		out["incubationDays"] = incubation
		if stringField(out, "expectedHatchDate") == "" {
			out["expectedHatchDate"] = lifecycle.FormatDate(lifecycle.ComputeExpectedDate(start, incubation))
		}
		if stringField(out, "id") == "" {
			out["id"] = lifecycle.NewRecordID(now)
		}

	default:
		return nil, fmt.Errorf("%w: unknown entity %q", ErrInvalidInput, e)
	}
	return out, nil
}

// applyLocal aplica op sobre snap sin hablar con el servidor.
func applyLocal(snap *Snapshot, op Operation, now time.Time) error {
	switch op.Kind {
	case OpCreate:
		return applyCreate(snap, op, now)
	case OpUpdate:
		return applyUpdate(snap, op, now)
	case OpDelete:
		return applyDelete(snap, op)
	}
	return fmt.Errorf("%w: unknown operation %q", ErrInvalidInput, op.Kind)
}

func applyCreate(snap *Snapshot, op Operation, now time.Time) error {
	if snap.has(op.Entity, op.ID) {
		return fmt.Errorf("%w: %s already exists", ErrInvalidInput, op)
	}
	switch op.Entity {
	case EntityAnimals:
		a, err := patchRecord(Animal{}, op.Fields)
		if err != nil {
			return err
		}
		if a.Status == "" {
			a.Status = string(lifecycle.AnimalActive)
		}
		a.ID, a.CreatedAt, a.UpdatedAt = op.ID, now, now
		snap.Animals = append([]Animal{a}, snap.Animals...)

	case EntityBreedings:
		b, err := patchRecord(Breeding{}, op.Fields)
		if err != nil {
			return err
		}
		b.Status = string(lifecycle.BreedingPending)
		b.ID, b.CreatedAt, b.UpdatedAt = op.ID, now, now
		snap.Breedings = append([]Breeding{b}, snap.Breedings...)

	case EntityHatchings:
		h, err := patchRecord(Hatching{}, op.Fields)
		if err != nil {
			return err
		}
		h.Status = string(lifecycle.HatchingIncubating)
		h.ID, h.CreatedAt, h.UpdatedAt = op.ID, now, now
		snap.Hatchings = append([]Hatching{h}, snap.Hatchings...)
	}
	snap.refreshDerived(now)
	return nil
}

func applyUpdate(snap *Snapshot, op Operation, now time.Time) error {
	patch := updatePatch(op.Entity, op.Fields)

	switch op.Entity {
	case EntityAnimals:
		for i, a := range snap.Animals {
			if a.ID == op.ID {
				next, err := patchRecord(a, patch)
				if err != nil {
					return err
				}
				next.UpdatedAt = now
				snap.Animals[i] = next
				snap.refreshDerived(now)
				return nil
			}
		}
	case EntityBreedings:
		for i, b := range snap.Breedings {
			if b.ID == op.ID {
				next, err := patchRecord(b, patch)
				if err != nil {
					return err
				}
				next.UpdatedAt = now
				snap.Breedings[i] = next
				snap.refreshDerived(now)
				return nil
			}
		}
	case EntityHatchings:
		for i, h := range snap.Hatchings {
			if h.ID == op.ID {
				next, err := patchRecord(h, patch)
				if err != nil {
					return err
				}
				next.UpdatedAt = now
				snap.Hatchings[i] = next
				snap.refreshDerived(now)
				return nil
			}
		}
	}
	return ErrNotFound
}

func applyDelete(snap *Snapshot, op Operation) error {
	switch op.Entity {
	case EntityAnimals:
		for i, a := range snap.Animals {
			if a.ID == op.ID {
				snap.Animals = append(snap.Animals[:i:i], snap.Animals[i+1:]...)
				return nil
			}
		}
	case EntityBreedings:
		for i, b := range snap.Breedings {
			if b.ID == op.ID {
				snap.Breedings = append(snap.Breedings[:i:i], snap.Breedings[i+1:]...)
				return nil
			}
		}
	case EntityHatchings:
		for i, h := range snap.Hatchings {
			if h.ID == op.ID {
				snap.Hatchings = append(snap.Hatchings[:i:i], snap.Hatchings[i+1:]...)
				return nil
			}
		}
	}
	return ErrNotFound
}

// updatePatch se queda con los campos mutables y descarta los null que el servidor ignora.
func updatePatch(e Entity, fields map[string]any) map[string]any {
	allowed := mutableFields[e]
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if !allowed[k] {
			continue
		}
		if v == nil && !clearableFields[k] {
			continue
		}
		out[k] = v
	}
	return out
}

// patchRecord pisa los campos de rec con fields usando los tags json del record.
func patchRecord[T any](rec T, fields map[string]any) (T, error) {
	var zero T

	raw, err := json.Marshal(rec)
	if err != nil {
		return zero, err
	}
	merged := map[string]any{}
	if err := json.Unmarshal(raw, &merged); err != nil {
		return zero, err
	}
	maps.Copy(merged, fields)

	raw, err = json.Marshal(merged)
	if err != nil {
		return zero, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return out, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// intField acepta los tipos que aparecen según el origen: int desde el CLI,
// float64 después de pasar por el archivo JSON.
func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	}
	return 0, false
}
