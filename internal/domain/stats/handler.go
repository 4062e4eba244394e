package stats

import (
	"net/http"

	"husbandry-tracker/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/stats", statsHandler(svc))
}

// statsHandler godoc
// @Summary Conteos por estado
// @Description Conteos agrupados por status para animales, cruzas e incubaciones.
// @Tags stats
// @Produce json
// @Success 200 {object} Snapshot
// @Failure 500 {object} respond.ErrorBody
// @Router /stats [get]
func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Snapshot(r.Context())
		if err != nil {
			respond.Error(w, http.StatusInternalServerError, err.Error())
			return
		}
		respond.JSON(w, http.StatusOK, snap)
	}
}
