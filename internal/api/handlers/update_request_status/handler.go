// Package update_request_status HTTP handler смены статуса заявки
package update_request_status

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
	"github.com/veloservis/BikeShop-Service/internal/service/requests"
	"github.com/veloservis/BikeShop-Service/internal/service/requests/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidRequestID   = "requestId must be a valid UUID"
	msgInvalidStatus      = "status must be one of: new, in_progress, done, cancelled"
	msgRequestNotFound    = "request not found"
)

// Handler обработчик смены статуса
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

// Handle обрабатывает PATCH /api/v1/requests/{requestId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	publicID, err := uuid.Parse(mux.Vars(r)["requestId"])
	if err != nil {
		handlers.RespondValidationError(w, msgInvalidRequestID)
		return
	}

	var httpReq UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("UpdateRequestStatus: failed to decode request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.UpdateStatus(r.Context(), publicID, &models.UpdateStatusRequest{
		OwnerEmail: middleware.UserEmail(r.Context()),
		Status:     httpReq.Status,
		Note:       httpReq.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidStatus)
		case errors.Is(err, requests.ErrRequestNotFound):
			handlers.RespondNotFound(w, msgRequestNotFound)
		default:
			h.logger.Error("UpdateRequestStatus: internal error for request id=%s: %v", publicID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
