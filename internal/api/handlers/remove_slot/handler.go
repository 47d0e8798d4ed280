// Package remove_slot HTTP handler удаления слота доступности механика
package remove_slot

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

// Handler обработчик удаления слота
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

// Handle обрабатывает DELETE /api/v1/mechanics/me/slots.
// Удаление отсутствующего момента отвечает так же, как успешное:
// операция no-op по контракту сервиса.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var httpReq RemoveSlotRequest
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("RemoveSlot: failed to decode request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	at, err := time.Parse(time.RFC3339, httpReq.At)
	if err != nil {
		handlers.RespondValidationError(w, msgInvalidSlotTime)
		return
	}

	email := middleware.UserEmail(r.Context())

	if err := h.service.RemoveSlot(r.Context(), email, at); err != nil {
		switch {
		case errors.Is(err, mechanics.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidSlotTime)
		case errors.Is(err, mechanics.ErrNotMechanic):
			handlers.RespondNotFound(w, msgNotMechanic)
		default:
			h.logger.Error("RemoveSlot: internal error for user=%s: %v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
