package list_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/internal/service/appointments/models"
	"github.com/m04kA/FloatBookingService/pkg/logger"
)

type stubService struct {
	got *models.ListAppointmentsRequest
}

func (s *stubService) List(_ context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.got = req
	return &models.AppointmentListResponse{Data: []models.AppointmentResponse{}, Page: 1, Limit: 20}, nil
}

func TestHandler_ParsesQuery(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet,
		"/appointments?locationId=loc-1&status=pending&startDate=2026-03-01&endDate=2026-03-07&page=2&limit=10", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0,"page":1,"limit":20,"totalPages":0}`, w.Body.String())

	require.NotNil(t, svc.got.LocationID)
	assert.Equal(t, "loc-1", *svc.got.LocationID)
	assert.Nil(t, svc.got.ClientID)
	assert.Equal(t, "pending", *svc.got.Status)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *svc.got.StartDate)
	assert.Equal(t, time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), *svc.got.EndDate)
	assert.Equal(t, 2, svc.got.Page)
	assert.Equal(t, 10, svc.got.Limit)
}

func TestHandler_InvalidQuery(t *testing.T) {
	h := NewHandler(&stubService{}, logger.Nop())

	for _, url := range []string{"/appointments?page=x", "/appointments?startDate=03/01/2026", "/appointments?limit=1.5"} {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}
