// Package upgrade_mechanic HTTP handler профиля механика:
// апгрейд пользователя до механика и чтение собственного профиля
package upgrade_mechanic

import (
	"errors"
	"net/http"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
	"github.com/veloservis/BikeShop-Service/internal/service/mechanics"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidSkills      = "skills must be a subset of: servis, reklamace, odpruzeni"
	msgAlreadyMechanic    = "user is already a mechanic"
	msgNotMechanic        = "user is not a mechanic"
)

// Handler обработчик профиля механика
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

// Handle обрабатывает POST /api/v1/mechanics/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var httpReq UpgradeRequest
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("UpgradeMechanic: failed to decode request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	email := middleware.UserEmail(r.Context())

	resp, err := h.service.Upgrade(r.Context(), email, httpReq.Skills)
	if err != nil {
		switch {
		case errors.Is(err, mechanics.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidSkills)
		case errors.Is(err, mechanics.ErrAlreadyMechanic):
			handlers.RespondError(w, http.StatusConflict, handlers.CodeValidationError, msgAlreadyMechanic)
		default:
			h.logger.Error("UpgradeMechanic: internal error for user=%s: %v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, resp)
}

// HandleProfile обрабатывает GET /api/v1/mechanics/me
func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	email := middleware.UserEmail(r.Context())

	resp, err := h.service.GetProfile(r.Context(), email)
	if err != nil {
		if errors.Is(err, mechanics.ErrNotMechanic) {
			handlers.RespondNotFound(w, msgNotMechanic)
			return
		}
		h.logger.Error("UpgradeMechanic: internal error fetching profile for user=%s: %v", email, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
