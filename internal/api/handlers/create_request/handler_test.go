package create_request

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloservis/BikeShop-Service/internal/api/handlers"
	"github.com/veloservis/BikeShop-Service/internal/api/middleware"
	"github.com/veloservis/BikeShop-Service/internal/domain"
	createRequest "github.com/veloservis/BikeShop-Service/internal/usecase/create_request"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type useCaseMock struct {
	resp *createRequest.Response
	err  error

	got *createRequest.Request
}

func (m *useCaseMock) Execute(_ context.Context, req *createRequest.Request) (*createRequest.Response, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func doRequest(t *testing.T, uc CreateRequestUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := New(uc, nopLogger{})
	router := http.NewServeMux()
	router.HandleFunc("/api/v1/requests", handler.Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserEmail, "customer@example.com")

	rec := httptest.NewRecorder()
	middleware.Auth(router).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandle_Success(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	assigned := now.Add(2 * time.Hour)
	uc := &useCaseMock{resp: &createRequest.Response{
		ID:            uuid.New(),
		OwnerEmail:    "customer@example.com",
		Status:        domain.StatusNew,
		ServiceTypes:  []domain.ServiceType{domain.ServiceTypeServis},
		DeferredBike:  true,
		AssignedDate:  &assigned,
		PriceEstimate: 500,
		Events: []domain.RequestEvent{
			{At: now, Type: domain.EventTypeCreated, To: domain.StatusNew, By: "customer@example.com"},
		},
	}}

	rec := doRequest(t, uc, `{
		"mechanicId": 1,
		"serviceTypes": ["servis"],
		"deferredBike": true,
		"preferredDate": "2026-09-01T10:00:00Z"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var body RequestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "new", body.Status)
	assert.Equal(t, []string{"servis"}, body.ServiceTypes)
	require.NotNil(t, body.AssignedDate)
	assert.True(t, body.AssignedDate.Equal(assigned))
	require.Len(t, body.Events, 1)
	assert.Equal(t, domain.EventTypeCreated, body.Events[0].Type)

	// Желаемый момент дошел до use case как UTC инстант
	require.NotNil(t, uc.got.PreferredDate)
	assert.True(t, uc.got.PreferredDate.Equal(assigned))
	assert.Equal(t, "customer@example.com", uc.got.OwnerEmail)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid input",
			err:        createRequest.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeValidationError,
		},
		{
			name:       "bike invalid",
			err:        createRequest.ErrBikeInvalid,
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeBikeInvalid,
		},
		{
			name:       "mechanic invalid",
			err:        createRequest.ErrMechanicInvalid,
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeMechanicInvalid,
		},
		{
			name:       "slot not offered",
			err:        createRequest.ErrSlotNotOffered,
			wantStatus: http.StatusBadRequest,
			wantCode:   handlers.CodeSlotNotOffered,
		},
		{
			name:       "slot taken",
			err:        createRequest.ErrSlotTaken,
			wantStatus: http.StatusConflict,
			wantCode:   handlers.CodeSlotTaken,
		},
		{
			name:       "no free slot",
			err:        createRequest.ErrNoFreeSlot,
			wantStatus: http.StatusConflict,
			wantCode:   handlers.CodeNoFreeSlot,
		},
		{
			name:       "internal error",
			err:        createRequest.ErrInternal,
			wantStatus: http.StatusInternalServerError,
			wantCode:   handlers.CodeServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &useCaseMock{err: tt.err}, `{"deferredBike": true}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestHandle_SkillMismatchCarriesMissing(t *testing.T) {
	uc := &useCaseMock{err: &createRequest.SkillMismatchError{
		Missing: []domain.ServiceType{domain.ServiceTypeOdpruzeni},
	}}

	rec := doRequest(t, uc, `{"mechanicId": 1, "serviceTypes": ["odpruzeni"], "deferredBike": true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, handlers.CodeSkillMismatch, body.Code)
	assert.Equal(t, []string{"odpruzeni"}, body.Missing)
}

func TestHandle_BadRequests(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		rec := doRequest(t, &useCaseMock{}, `{`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, handlers.CodeValidationError, decodeError(t, rec).Code)
	})

	t.Run("unparseable preferred date", func(t *testing.T) {
		rec := doRequest(t, &useCaseMock{}, `{"deferredBike": true, "preferredDate": "tomorrow"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, handlers.CodeValidationError, decodeError(t, rec).Code)
	})
}

func TestHandle_MissingAuthHeader(t *testing.T) {
	handler := New(&useCaseMock{}, nopLogger{})
	router := http.NewServeMux()
	router.HandleFunc("/api/v1/requests", handler.Handle)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/requests", strings.NewReader(`{"deferredBike": true}`))

	rec := httptest.NewRecorder()
	middleware.Auth(router).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, handlers.CodeUnauthorized, decodeError(t, rec).Code)
}
