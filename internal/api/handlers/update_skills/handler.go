// Package update_skills HTTP handler замены навыков механика
package update_skills

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
	msgNotMechanic        = "user is not a mechanic"
)

// Handler обработчик замены навыков
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

// Handle обрабатывает PUT /api/v1/mechanics/me/skills
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var httpReq UpdateSkillsRequest
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("UpdateSkills: failed to decode request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	email := middleware.UserEmail(r.Context())

	resp, err := h.service.UpdateSkills(r.Context(), email, httpReq.Skills)
	if err != nil {
		switch {
		case errors.Is(err, mechanics.ErrInvalidInput):
			handlers.RespondValidationError(w, msgInvalidSkills)
		case errors.Is(err, mechanics.ErrNotMechanic):
			handlers.RespondNotFound(w, msgNotMechanic)
		default:
			h.logger.Error("UpdateSkills: internal error for user=%s: %v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
