package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/FloatBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/FloatBookingService/pkg/logger"
)

type stubUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(h *Handler, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/locations/{locationId}/availability", h.Handle)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestHandler_ReturnsSlotList(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableSlots.Response{Slots: []domain.Slot{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: false},
	}}}
	h := NewHandler(uc, logger.Nop())

	w := serve(h, "/locations/loc-1/availability?serviceId=float-60&date=2026-03-02&durationMinutes=90")

	require.Equal(t, http.StatusOK, w.Code)
	var body []SlotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []SlotResponse{{"09:00", true}, {"09:30", false}}, body)

	assert.Equal(t, "loc-1", uc.got.LocationID)
	assert.Equal(t, "float-60", uc.got.ServiceID)
	require.NotNil(t, uc.got.DurationMinutes)
	assert.Equal(t, 90, *uc.got.DurationMinutes)
}

func TestHandler_EmptyDayIsNotAnError(t *testing.T) {
	h := NewHandler(&stubUseCase{resp: &getAvailableSlots.Response{}}, logger.Nop())

	w := serve(h, "/locations/loc-1/availability?serviceId=float-60&date=2026-03-01")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		err    error
		status int
	}{
		{"missing service", "/locations/loc-1/availability?date=2026-03-02", nil, http.StatusBadRequest},
		{"missing date", "/locations/loc-1/availability?serviceId=s", nil, http.StatusBadRequest},
		{"bad date", "/locations/loc-1/availability?serviceId=s&date=02.03.2026", nil, http.StatusBadRequest},
		{"bad duration", "/locations/loc-1/availability?serviceId=s&date=2026-03-02&durationMinutes=x", nil, http.StatusBadRequest},
		{"service not found", "/locations/loc-1/availability?serviceId=s&date=2026-03-02", getAvailableSlots.ErrServiceNotFound, http.StatusNotFound},
		{"validation", "/locations/loc-1/availability?serviceId=s&date=2026-03-02", getAvailableSlots.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/locations/loc-1/availability?serviceId=s&date=2026-03-02", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{resp: &getAvailableSlots.Response{}, err: tt.err}, logger.Nop())
			w := serve(h, tt.url)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
