// Package get_user_requests HTTP handler списка заявок пользователя
package get_user_requests

import (
	"errors"
	"net/http"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
	"github.com/veloservis/BikeShop-Service/internal/service/requests"
	"github.com/veloservis/BikeShop-Service/internal/service/requests/models"
)

const (
	msgInvalidStatus = "status must be one of: new, in_progress, done, cancelled"
)

// Handler обработчик списка заявок
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

// Handle обрабатывает GET /api/v1/requests с опциональным фильтром ?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetUserRequestsRequest{
		OwnerEmail: middleware.UserEmail(r.Context()),
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	resp, err := h.service.GetUserRequests(r.Context(), req)
	if err != nil {
		if errors.Is(err, requests.ErrInvalidInput) {
			handlers.RespondValidationError(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GetUserRequests: internal error: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
