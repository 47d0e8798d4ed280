// Package add_slot HTTP handler заявки слота доступности механика
package add_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
	"github.com/veloservis/BikeShop-Service/internal/service/mechanics"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidSlotTime    = "at must be a valid RFC 3339 timestamp"
	msgNotMechanic        = "user is not a mechanic"
)

// Handler обработчик добавления слота
type Handler struct {
	service MechanicsService
	logger  Logger
}

// New создает новый Handler
func New(service MechanicsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает POST /api/v1/mechanics/me/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var httpReq AddSlotRequest
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("AddSlot: failed to decode request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	at, err := time.Parse(time.RFC3339, httpReq.At)
	if err != nil {
		handlers.RespondValidationError(w, msgInvalidSlotTime)
		return
	}

	email := middleware.UserEmail(r.Context())

	if err := h.service.AddSlot(r.Context(), email, at); err != nil {
		switch {
		case errors.Is(err, mechanics.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidSlotTime)
		case errors.Is(err, mechanics.ErrNotMechanic):
			handlers.RespondNotFound(w, msgNotMechanic)
		default:
			h.logger.Error("AddSlot: internal error for user=%s: %v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
