// Package get_request HTTP handler получения заявки владельца
package get_request

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

// Handler обработчик получения заявки
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

// Handle обрабатывает GET /api/v1/requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	publicID, err := uuid.Parse(mux.Vars(r)["requestId"])
	if err != nil {
		handlers.RespondValidationError(w, msgInvalidRequestID)
		return
	}

	ownerEmail := middleware.UserEmail(r.Context())

	resp, err := h.service.GetByID(r.Context(), publicID, ownerEmail)
	if err != nil {
		if errors.Is(err, requests.ErrRequestNotFound) {
			handlers.RespondNotFound(w, msgRequestNotFound)
			return
		}
		h.logger.Error("GetRequest: internal error for request id=%s: %v", publicID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
