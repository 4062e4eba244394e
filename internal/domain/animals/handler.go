package animals

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

const notFoundMsg = "Animal not found"

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc))
		ar.Post("/", createAnimalHandler(svc))

		// Candidatos para una cruza (?role=male|female)
		ar.Get("/eligible", eligibleAnimalsHandler(svc))

		ar.Get("/{id}", getAnimalHandler(svc))
		ar.Put("/{id}", updateAnimalHandler(svc))
		ar.Delete("/{id}", deleteAnimalHandler(svc))
	})
}

// createAnimalRequest es el cuerpo para dar de alta un animal.
type createAnimalRequest struct {
	ID          string `json:"id"` // opcional, formato AB-1234
	Name        string `json:"name"`
	Species     string `json:"species" enums:"rabbit,quail,chicken,other"`
	Breed       string `json:"breed"`
	Color       string `json:"color"`
	Sex         string `json:"sex" enums:"male,female"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD
	Status      string `json:"status" enums:"Active,Breeder,Retired"`
	Notes       string `json:"notes"`
	Image       string `json:"image"`
}

type updateAnimalRequest struct {
	Name        *string `json:"name"`
	Species     *string `json:"species"`
	Breed       *string `json:"breed"`
	Color       *string `json:"color"`
	Sex         *string `json:"sex"`
	DateOfBirth *string `json:"dateOfBirth"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
	Image       *string `json:"image"`
}

// animalResponse representa un animal devuelto por la API.
type animalResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Species     Species   `json:"species"`
	Breed       string    `json:"breed"`
	Color       string    `json:"color"`
	Sex         Sex       `json:"sex,omitempty"`
	DateOfBirth string    `json:"dateOfBirth"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Devuelve todos los animales, el más reciente primero.
// @Tags animals
// @Produce json
// @Success 200 {array} animalResponse
// @Failure 500 {object} respond.ErrorBody
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		respond.JSON(w, http.StatusOK, toAnimalResponses(items))
	}
}

// getAnimalHandler godoc
// @Summary Obtener animal
// @Tags animals
// @Produce json
// @Param id path string true "ID del animal (AB-1234)"
// @Success 200 {object} animalResponse
// @Failure 404 {object} respond.ErrorBody "Animal not found"
// @Failure 500 {object} respond.ErrorBody
// @Router /animals/{id} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		respond.JSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// createAnimalHandler godoc
// @Summary Crear animal
// @Description Alta de un animal. Si no viene id, el servidor genera uno con formato AB-1234.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal; dateOfBirth en YYYY-MM-DD"
// @Success 201 {object} respond.SuccessBody
// @Failure 400 {object} respond.ErrorBody
// @Failure 500 {object} respond.ErrorBody
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var dob *time.Time
		if strings.TrimSpace(req.DateOfBirth) != "" {
			t, err := lifecycle.ParseDate(req.DateOfBirth)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, "dateOfBirth must be YYYY-MM-DD")
				return
			}
			dob = &t
		}

		a, err := svc.Create(r.Context(), CreateInput{
			ID:          req.ID,
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Color:       req.Color,
			Sex:         req.Sex,
			DateOfBirth: dob,
			Status:      req.Status,
			Notes:       req.Notes,
			Image:       req.Image,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respond.Created(w, a.ID)
	}
}

// updateAnimalHandler godoc
// @Summary Actualizar animal
// @Description Update parcial: los campos ausentes no se tocan.
// @Tags animals
// @Accept json
// @Produce json
// @Param id path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos a modificar"
// @Success 200 {object} respond.SuccessBody
// @Failure 400 {object} respond.ErrorBody
// @Failure 404 {object} respond.ErrorBody "Animal not found"
// @Failure 500 {object} respond.ErrorBody
// @Router /animals/{id} [put]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var dob *time.Time
		if req.DateOfBirth != nil {
			t, err := lifecycle.ParseDate(*req.DateOfBirth)
			if err != nil {
				respond.Error(w, http.StatusBadRequest, "dateOfBirth must be YYYY-MM-DD")
				return
			}
			dob = &t
		}

		_, err := svc.Update(r.Context(), chi.URLParam(r, "id"), UpdateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Color:       req.Color,
			Sex:         req.Sex,
			DateOfBirth: dob,
			Status:      req.Status,
			Notes:       req.Notes,
			Image:       req.Image,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		respond.OK(w)
	}
}

// deleteAnimalHandler godoc
// @Summary Borrar animal
// @Description Borra sin cascada; las cruzas que lo referencian quedan con el id colgando.
// @Tags animals
// @Produce json
// @Param id path string true "ID del animal"
// @Success 200 {object} respond.SuccessBody
// @Failure 404 {object} respond.ErrorBody "Animal not found"
// @Failure 500 {object} respond.ErrorBody
// @Router /animals/{id} [delete]
func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeServiceError(w, err)
			return
		}
		respond.OK(w)
	}
}

// eligibleAnimalsHandler godoc
// @Summary Candidatos para cruza
// @Description Animales Breeder/Active del sexo pedido, más los que no tienen sexo cargado.
// @Tags animals
// @Produce json
// @Param role query string true "male o female"
// @Success 200 {array} animalResponse
// @Failure 400 {object} respond.ErrorBody
// @Router /animals/eligible [get]
func eligibleAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := Sex(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("role"))))
		items, err := svc.Eligible(r.Context(), role)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				respond.Error(w, http.StatusBadRequest, "role must be male or female")
				return
			}
			respond.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		respond.JSON(w, http.StatusOK, toAnimalResponses(items))
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

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:          a.ID,
		Name:        a.Name,
		Species:     a.Species,
		Breed:       a.Breed,
		Color:       a.Color,
		Sex:         a.Sex,
		DateOfBirth: lifecycle.FormatDate(a.DateOfBirth),
		Status:      string(a.Status),
		Notes:       a.Notes,
		Image:       a.Image,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAnimalResponses(items []Animal) []animalResponse {
	out := make([]animalResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAnimalResponse(a))
	}
	return out
}
