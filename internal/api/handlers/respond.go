// Package handlers общие помощники HTTP слоя: декодирование запросов
// и формирование ответов с машиночитаемыми кодами ошибок
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Машиночитаемые коды ошибок API
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeServerError     = "SERVER_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"

	CodeBikeInvalid     = "BIKE_INVALID"
	CodeMaxBikesReached = "MAX_BIKES_REACHED"

	CodeMechanicInvalid = "MECHANIC_INVALID"
	CodeSkillMismatch   = "SKILL_MISMATCH"
	CodeSlotNotOffered  = "SLOT_NOT_OFFERED"
	CodeSlotTaken       = "SLOT_TAKEN"
	CodeNoFreeSlot      = "NO_FREE_SLOT"
)

// ErrorResponse тело ответа с ошибкой.
// Missing заполняется только для SKILL_MISMATCH: список типов услуг,
// которые механик не покрывает.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
}

// DecodeJSON декодирует тело запроса в dst.
// Неизвестные поля игнорируются: фильтрация происходит на границе API,
// внутрь сервиса попадают только именованные поля модели.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondValidationError пишет 400 с кодом VALIDATION_ERROR
func RespondValidationError(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidationError, message)
}

// RespondNotFound пишет 404 с кодом NOT_FOUND
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondInternalError пишет 500 с общим кодом, не раскрывая внутренних деталей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeServerError, "internal server error")
}

// RespondSkillMismatch пишет 400 с кодом SKILL_MISMATCH и списком
// непокрытых типов услуг
func RespondSkillMismatch(w http.ResponseWriter, message string, missing []string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    CodeSkillMismatch,
		Message: message,
		Missing: missing,
	})
}
