// Package delete_request HTTP handler удаления заявки владельцем
package delete_request

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
	"github.com/veloservis/BikeShop-Service/internal/service/requests"
)

const (
	msgInvalidRequestID = "requestId must be a valid UUID"
	msgRequestNotFound  = "request not found"
)

// Handler обработчик удаления заявки
type Handler struct {
	service RequestsService
	logger  Logger
}

// New создает новый Handler
func New(service RequestsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle обрабатывает DELETE /api/v1/requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	publicID, err := uuid.Parse(mux.Vars(r)["requestId"])
	if err != nil {
		handlers.RespondValidationError(w, msgInvalidRequestID)
		return
	}

	ownerEmail := middleware.UserEmail(r.Context())

	if err := h.service.Delete(r.Context(), publicID, ownerEmail); err != nil {
		if errors.Is(err, requests.ErrRequestNotFound) {
			handlers.RespondNotFound(w, msgRequestNotFound)
			return
		}
		h.logger.Error("DeleteRequest: internal error for request id=%s: %v", publicID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
