// Package create_request HTTP handler создания заявки на обслуживание
package create_request

import (
	"errors"
	"net/http"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
	createRequest "github.com/veloservis/BikeShop-Service/internal/usecase/create_request"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "preferredDate must be a valid RFC 3339 timestamp"
	msgBikeInvalid        = "bike not found or not owned by user"
	msgMechanicInvalid    = "mechanic not found or inactive"
	msgSkillMismatch      = "mechanic does not cover requested service types"
	msgSlotNotOffered     = "preferred date is not an offered slot"
	msgSlotTaken          = "slot is already taken"
	msgNoFreeSlot         = "mechanic has no free slot"
)

// Handler обработчик создания заявки
type Handler struct {
	useCase CreateRequestUseCase
	logger  Logger
}

// New создает новый Handler
func New(useCase CreateRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает POST /api/v1/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var httpReq CreateRequestRequest
	if err := handlers.DecodeJSON(r, &httpReq); err != nil {
		h.logger.Warn("CreateRequest: failed to decode request body: %v", err)
		handlers.RespondValidationError(w, msgInvalidRequestBody)
		return
	}

	ownerEmail := middleware.UserEmail(r.Context())

	ucReq, err := httpReq.ToUseCaseRequest(ownerEmail)
	if err != nil {
		h.logger.Warn("CreateRequest: invalid preferredDate: %v", err)
		handlers.RespondValidationError(w, msgInvalidDate)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		h.handleError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var skillErr *createRequest.SkillMismatchError

	switch {
	case errors.Is(err, createRequest.ErrInvalidInput):
		handlers.RespondValidationError(w, err.Error())
	case errors.As(err, &skillErr):
		missing := make([]string, len(skillErr.Missing))
		for i, t := range skillErr.Missing {
			missing[i] = string(t)
		}
		handlers.RespondSkillMismatch(w, msgSkillMismatch, missing)
	case errors.Is(err, createRequest.ErrBikeInvalid):
		handlers.RespondError(w, http.StatusBadRequest, handlers.CodeBikeInvalid, msgBikeInvalid)
	case errors.Is(err, createRequest.ErrMechanicInvalid):
		handlers.RespondError(w, http.StatusBadRequest, handlers.CodeMechanicInvalid, msgMechanicInvalid)
	case errors.Is(err, createRequest.ErrSlotNotOffered):
		handlers.RespondError(w, http.StatusBadRequest, handlers.CodeSlotNotOffered, msgSlotNotOffered)
	case errors.Is(err, createRequest.ErrSlotTaken):
		handlers.RespondError(w, http.StatusConflict, handlers.CodeSlotTaken, msgSlotTaken)
	case errors.Is(err, createRequest.ErrNoFreeSlot):
		handlers.RespondError(w, http.StatusConflict, handlers.CodeNoFreeSlot, msgNoFreeSlot)
	default:
		h.logger.Error("CreateRequest: internal error: %v", err)
		handlers.RespondInternalError(w)
	}
}
