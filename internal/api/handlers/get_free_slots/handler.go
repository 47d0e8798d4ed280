// Package get_free_slots HTTP handler публичного списка свободных слотов механика
package get_free_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	getFreeSlots "github.com/veloservis/BikeShop-Service/internal/usecase/get_free_slots"
)

const (
	msgInvalidMechanicID = "mechanicId must be a positive integer"
	msgMechanicInvalid   = "mechanic not found or inactive"
)

// FreeSlotsResponse список свободных слотов по возрастанию
type FreeSlotsResponse struct {
	MechanicID int64       `json:"mechanicId"`
	FreeSlots  []time.Time `json:"freeSlots"`
}

// Handler обработчик свободных слотов
type Handler struct {
	useCase GetFreeSlotsUseCase
	logger  Logger
}

// New создает новый Handler
func New(useCase GetFreeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle обрабатывает GET /api/v1/mechanics/{mechanicId}/free-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	mechanicID, err := strconv.ParseInt(mux.Vars(r)["mechanicId"], 10, 64)
	if err != nil || mechanicID <= 0 {
		handlers.RespondValidationError(w, msgInvalidMechanicID)
		return
	}

	slots, err := h.useCase.Execute(r.Context(), mechanicID)
	if err != nil {
		if errors.Is(err, getFreeSlots.ErrMechanicInvalid) {
			handlers.RespondError(w, http.StatusNotFound, handlers.CodeMechanicInvalid, msgMechanicInvalid)
			return
		}
		h.logger.Error("GetFreeSlots: internal error for mechanic id=%d: %v", mechanicID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FreeSlotsResponse{
		MechanicID: mechanicID,
		FreeSlots:  slots,
	})
}
