// Package get_user_bikes HTTP handler списка велосипедов пользователя
package get_user_bikes

import (
	"net/http"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
)

// Handler обработчик списка велосипедов
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

// Handle обрабатывает GET /api/v1/bikes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerEmail := middleware.UserEmail(r.Context())

	resp, err := h.service.GetUserBikes(r.Context(), ownerEmail)
	if err != nil {
		h.logger.Error("GetUserBikes: internal error for owner=%s: %v", ownerEmail, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
