// Package add_bike HTTP handler регистрации велосипеда
package add_bike

import (
	"errors"
	"net/http"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
	"github.com/veloservis/BikeShop-Service/internal/service/bikes"
	"github.com/veloservis/BikeShop-Service/internal/service/bikes/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgBrandModelRequired = "brand and model are required"
	msgMaxBikesReached    = "bike limit per owner reached"
)

// Handler обработчик регистрации велосипеда
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

// Handle обрабатывает POST /api/v1/bikes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var httpReq AddBikeRequest
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("AddBike: failed to decode request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	ownerEmail := middleware.UserEmail(r.Context())

	resp, err := h.service.Create(r.Context(), &models.CreateBikeRequest{
		OwnerEmail:   ownerEmail,
		Brand:        httpReq.Brand,
		Model:        httpReq.Model,
		SerialNumber: httpReq.SerialNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, bikes.ErrInvalidInput):
			handlers.RespondValidationError(w, msgBrandModelRequired)
		case errors.Is(err, bikes.ErrMaxBikesReached):
			handlers.RespondError(w, http.StatusConflict, handlers.CodeMaxBikesReached, msgMaxBikesReached)
		default:
			h.logger.Error("AddBike: internal error for owner=%s: %v", ownerEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, resp)
}
