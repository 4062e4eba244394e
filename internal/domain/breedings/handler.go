package breedings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"husbandry-tracker/internal/domain/lifecycle"
	"husbandry-tracker/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

const notFoundMsg = "Breeding not found"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/breedings", func(br chi.Router) {
		br.Get("/", listBreedingsHandler(svc))
		br.Post("/", createBreedingHandler(svc))
		br.Get("/{id}", getBreedingHandler(svc))
		br.Put("/{id}", updateBreedingHandler(svc))
		br.Delete("/{id}", deleteBreedingHandler(svc))
	})
}

// createBreedingRequest es el cuerpo para registrar una cruza.
type createBreedingRequest struct {
	ID            string `json:"id"` // opcional
	MaleID        string `json:"maleId"`
	FemaleID      string `json:"femaleId"`
	BreedingDate  string `json:"breedingDate"`  // YYYY-MM-DD
	GestationDays int    `json:"gestationDays"` // default 31, rango 1-365
	ExpectedDate  string `json:"expectedDate"`  // opcional; si falta se calcula
	Notes         string `json:"notes"`
}

type updateBreedingRequest struct {
	Status     *string `json:"status" enums:"pending,successful,failed"`
	ActualDate *string `json:"actualDate"` // YYYY-MM-DD o null para limpiar
	Offspring  *int    `json:"offspring"`
	Notes      *string `json:"notes"`
}

// breedingResponse es la cruza con nombres de padres (null si el animal fue borrado)
// y los derivados de lectura.
type breedingResponse struct {
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
	Urgency       string `json:"urgency" enums:"overdue,due_soon,on_track,closed"`
}

// listBreedingsHandler godoc
// @Summary Listar cruzas
// @Description Cruzas con nombre/especie de macho y hembra (LEFT JOIN). Campos null = animal borrado.
// @Tags breedings
// @Produce json
// @Success 200 {array} breedingResponse
// @Failure 500 {object} respond.ErrorBody
// @Router /breedings [get]
func listBreedingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]breedingResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toBreedingResponse(v, svc.Progress(v.Breeding)))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getBreedingHandler godoc
// @Summary Obtener cruza
// @Tags breedings
// @Produce json
// @Param id path string true "ID de la cruza"
// @Success 200 {object} breedingResponse
// @Failure 404 {object} respond.ErrorBody "Breeding not found"
// @Router /breedings/{id} [get]
func getBreedingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toBreedingResponse(v, svc.Progress(v.Breeding)))
	}
}

// createBreedingHandler godoc
// @Summary Crear cruza
// @Description Registra una cruza en estado pending. expectedDate = breedingDate + gestationDays si no viene en el payload.
// @Tags breedings
// @Accept json
// @Produce json
// @Param payload body createBreedingRequest true "Datos de la cruza"
// @Success 201 {object} respond.SuccessBody
// @Failure 400 {object} respond.ErrorBody
// @Failure 500 {object} respond.ErrorBody
// @Router /breedings [post]
func createBreedingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBreedingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var bred *time.Time
		if strings.TrimSpace(req.BreedingDate) != "" {
			t, err := lifecycle.ParseDate(req.BreedingDate)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, "breedingDate must be YYYY-MM-DD")
				return
			}
			bred = &t
		}
		expected, err := lifecycle.ParseDatePtr(&req.ExpectedDate)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "expectedDate must be YYYY-MM-DD")
			return
		}

		b, err := svc.Create(r.Context(), CreateInput{
			ID:            req.ID,
			MaleID:        req.MaleID,
			FemaleID:      req.FemaleID,
			BreedingDate:  bred,
			GestationDays: req.GestationDays,
			ExpectedDate:  expected,
			Notes:         req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respond.Created(w, b.ID)
	}
}

// updateBreedingHandler godoc
// @Summary Registrar resultado de cruza
// @Description Solo modifica status, actualDate, offspring y notes. Transiciones fuera de orden se aceptan y se loguean.
// @Tags breedings
// @Accept json
// @Produce json
// @Param id path string true "ID de la cruza"
// @Param payload body updateBreedingRequest true "Resultado"
// @Success 200 {object} respond.SuccessBody
// @Failure 400 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody "Breeding not found"
// @Router /breedings/{id} [put]
func updateBreedingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := respond.DecodeRaw(r)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var req updateBreedingRequest
		if err := respond.Into(raw, &req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		// actualDate: null limpia, ausente no toca
		var patch lifecycle.DatePatch
		if present, isNull := respond.Present(raw, "actualDate"); present {
			patch.Present = true
			if !isNull {
				t, err := lifecycle.ParseDatePtr(req.ActualDate)
				if err != nil {
					respond.Error(w, http.StatusBadRequest, "actualDate must be YYYY-MM-DD or null")
					return
				}
				patch.Value = t
			}
		}

		_, err = svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Status:     req.Status,
			ActualDate: patch,
			Offspring:  req.Offspring,
			Notes:      req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respond.OK(w)
	}
}

// deleteBreedingHandler godoc
// @Summary Borrar cruza
// @Tags breedings
// @Produce json
// @Param id path string true "ID de la cruza"
// @Success 200 {object} respond.SuccessBody
// @Failure 404 {object} respond.ErrorBody "Breeding not found"
// @Router /breedings/{id} [delete]
func deleteBreedingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		respond.OK(w)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.Error(w, http.StatusNotFound, notFoundMsg)
	default:
		respond.Error(w, http.StatusInternalServerError, err.Error())
	}
}

func toBreedingResponse(v View, p Progress) breedingResponse {
	return breedingResponse{
		ID:            v.ID,
		MaleID:        v.MaleID,
		FemaleID:      v.FemaleID,
		BreedingDate:  lifecycle.FormatDate(v.BreedingDate),
		GestationDays: v.GestationDays,
		ExpectedDate:  lifecycle.FormatDate(v.ExpectedDate),
		ActualDate:    lifecycle.FormatDatePtr(v.ActualDate),
		Status:        string(v.Status),
		Offspring:     v.Offspring,
		Notes:         v.Notes,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
		MaleName:      v.Male.Name,
		MaleSpecies:   v.Male.Species,
		FemaleName:    v.Female.Name,
		FemaleSpecies: v.Female.Species,
		DaysRemaining: p.DaysRemaining,
		Urgency:       string(p.Urgency),
	}
}
