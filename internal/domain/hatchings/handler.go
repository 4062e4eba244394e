package hatchings

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

const notFoundMsg = "Hatching not found"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/hatchings", func(hr chi.Router) {
		hr.Get("/", listHatchingsHandler(svc))
		hr.Post("/", createHatchingHandler(svc))
		hr.Get("/{id}", getHatchingHandler(svc))
		hr.Put("/{id}", updateHatchingHandler(svc))
		hr.Delete("/{id}", deleteHatchingHandler(svc))
	})
}

// createHatchingRequest es el cuerpo para iniciar una incubación.
type createHatchingRequest struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	TotalEggs         int      `json:"totalEggs"`
	StartDate         string   `json:"startDate"`      // YYYY-MM-DD
	IncubationDays    int      `json:"incubationDays"` // default 21
	ExpectedHatchDate string   `json:"expectedHatchDate"`
	Temperature       *float64 `json:"temperature"`
	Humidity          *float64 `json:"humidity"`
	Notes             string   `json:"notes"`
}

type updateHatchingRequest struct {
	Status          *string  `json:"status" enums:"incubating,hatching,completed"`
	ActualHatchDate *string  `json:"actualHatchDate"`
	HatchedEggs     *int     `json:"hatchedEggs"`
	Temperature     *float64 `json:"temperature"`
	Humidity        *float64 `json:"humidity"`
	Notes           *string  `json:"notes"`
}

type hatchingResponse struct {
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
	Urgency       string  `json:"urgency" enums:"overdue,due_soon,on_track,closed"`
}

// listHatchingsHandler godoc
// @Summary Listar incubaciones
// @Tags hatchings
// @Produce json
// @Success 200 {array} hatchingResponse
// @Failure 500 {object} respond.ErrorBody
// @Router /hatchings [get]
func listHatchingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		out := make([]hatchingResponse, 0, len(items))
		for _, h := range items {
			out = append(out, toHatchingResponse(h, svc.Progress(h)))
		}
		respond.JSON(w, http.StatusOK, out)
	}
}

// getHatchingHandler godoc
// @Summary Obtener incubación
// @Tags hatchings
// @Produce json
// @Param id path string true "ID de la incubación"
// @Success 200 {object} hatchingResponse
// @Failure 404 {object} respond.ErrorBody "Hatching not found"
// @Router /hatchings/{id} [get]
func getHatchingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toHatchingResponse(h, svc.Progress(h)))
	}
}

// createHatchingHandler godoc
// @Summary Crear incubación
// @Description expectedHatchDate = startDate + incubationDays si no viene en el payload.
// @Tags hatchings
// @Accept json
// @Produce json
// @Param payload body createHatchingRequest true "Datos del lote"
// @Success 201 {object} respond.SuccessBody
// @Failure 400 {object} respond.ErrorBody
// @Failure 500 {object} respond.ErrorBody
// @Router /hatchings [post]
func createHatchingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createHatchingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var start *time.Time
		if strings.TrimSpace(req.StartDate) != "" {
			t, err := lifecycle.ParseDate(req.StartDate)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
				return
			}
			start = &t
		}
		expected, err := lifecycle.ParseDatePtr(&req.ExpectedHatchDate)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "expectedHatchDate must be YYYY-MM-DD")
			return
		}

		h, err := svc.Create(r.Context(), CreateInput{
			ID:                req.ID,
			Name:              req.Name,
			TotalEggs:         req.TotalEggs,
			StartDate:         start,
			IncubationDays:    req.IncubationDays,
			ExpectedHatchDate: expected,
			Temperature:       req.Temperature,
			Humidity:          req.Humidity,
			Notes:             req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respond.Created(w, h.ID)
	}
}

// updateHatchingHandler godoc
// @Summary Actualizar incubación
// @Description Update parcial de status, actualHatchDate, hatchedEggs, temperature, humidity y notes.
// @Tags hatchings
// @Accept json
// @Produce json
// @Param id path string true "ID de la incubación"
// @Param payload body updateHatchingRequest true "Campos a modificar"
// @Success 200 {object} respond.SuccessBody
// @Failure 400 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody "Hatching not found"
// @Router /hatchings/{id} [put]
func updateHatchingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := respond.DecodeRaw(r)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var req updateHatchingRequest
		if err := respond.Into(raw, &req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var patch lifecycle.DatePatch
		if present, isNull := respond.Present(raw, "actualHatchDate"); present {
			patch.Present = true
			if !isNull {
				t, err := lifecycle.ParseDatePtr(req.ActualHatchDate)
				if err != nil {
					respond.Error(w, http.StatusBadRequest, "actualHatchDate must be YYYY-MM-DD or null")
					return
				}
				patch.Value = t
			}
		}

		_, err = svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Status:          req.Status,
			ActualHatchDate: patch,
			HatchedEggs:     req.HatchedEggs,
			Temperature:     req.Temperature,
			Humidity:        req.Humidity,
			Notes:           req.Notes,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respond.OK(w)
	}
}

// deleteHatchingHandler godoc
// @Summary Borrar incubación
// @Tags hatchings
// @Produce json
// @Param id path string true "ID de la incubación"
// @Success 200 {object} respond.SuccessBody
// @Failure 404 {object} respond.ErrorBody "Hatching not found"
// @Router /hatchings/{id} [delete]
func deleteHatchingHandler(svc *Service) http.HandlerFunc {
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

func toHatchingResponse(h Hatching, p Progress) hatchingResponse {
	return hatchingResponse{
		ID:                h.ID,
		Name:              h.Name,
		TotalEggs:         h.TotalEggs,
		StartDate:         lifecycle.FormatDate(h.StartDate),
		IncubationDays:    h.IncubationDays,
		ExpectedHatchDate: lifecycle.FormatDate(h.ExpectedHatchDate),
		ActualHatchDate:   lifecycle.FormatDatePtr(h.ActualHatchDate),
		HatchedEggs:       h.HatchedEggs,
		Status:            string(h.Status),
		Temperature:       h.Temperature,
		Humidity:          h.Humidity,
		Notes:             h.Notes,
		CreatedAt:         h.CreatedAt,
		UpdatedAt:         h.UpdatedAt,
		HatchRate:         p.HatchRate,
		DaysRemaining:     p.DaysRemaining,
		Urgency:           string(p.Urgency),
	}
}
