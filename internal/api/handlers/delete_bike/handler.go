// Package delete_bike HTTP handler удаления велосипеда владельцем
package delete_bike

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
	"github.com/veloservis/BikeShop-Service/internal/service/bikes"
)

const (
	msgInvalidBikeID = "bikeId must be a positive integer"
	msgBikeNotFound  = "bike not found"
)

// Handler обработчик удаления велосипеда
type Handler struct {
	service BikesService
	logger  Logger
}

// New создает новый Handler
func New(service BikesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает DELETE /api/v1/bikes/{bikeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bikeID, err := strconv.ParseInt(mux.Vars(r)["bikeId"], 10, 64)
	if err != nil || bikeID <= 0 {
		handlers.RespondValidationError(w, msgInvalidBikeID)
		return
	}

	ownerEmail := middleware.UserEmail(r.Context())

	if err := h.service.Delete(r.Context(), bikeID, ownerEmail); err != nil {
		if errors.Is(err, bikes.ErrBikeNotFound) {
			handlers.RespondNotFound(w, msgBikeNotFound)
			return
		}
		h.logger.Error("DeleteBike: internal error for bike id=%d: %v", bikeID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
