package update_appointment_status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/internal/api/middleware"
	"github.com/m04kA/FloatBookingService/internal/domain"
	"github.com/m04kA/FloatBookingService/internal/service/appointments"
	"github.com/m04kA/FloatBookingService/internal/service/appointments/models"
	"github.com/m04kA/FloatBookingService/pkg/logger"
)

type stubService struct {
	got *models.UpdateStatusRequest
	err error
}

func (s *stubService) UpdateStatus(_ context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentResponse{ID: id, Status: req.Status}, nil
}

func serve(svc AppointmentService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	staff := r.PathPrefix("").Subrouter()
	staff.Use(middleware.Staff(logger.Nop()))
	staff.HandleFunc("/appointments/{appointmentId}/status", NewHandler(svc, logger.Nop()).Handle)

	req := httptest.NewRequest(http.MethodPatch, "/appointments/appt-1/status", strings.NewReader(body))
	req.Header.Set(middleware.StaffIDHeader, "staff-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_PassesStaffID(t *testing.T) {
	svc := &stubService{}
	w := serve(svc, `{"status":"confirmed"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "staff-1", svc.got.StaffID)
	assert.Equal(t, "confirmed", svc.got.Status)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"bad body", `[]`, nil, http.StatusBadRequest},
		{"unknown status", `{"status":"x"}`, fmt.Errorf("%w: unknown status", domain.ErrValidation), http.StatusBadRequest},
		{"terminal", `{"status":"confirmed"}`, fmt.Errorf("%w: terminal", domain.ErrConflict), http.StatusConflict},
		{"not found", `{"status":"confirmed"}`, appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"internal", `{"status":"confirmed"}`, errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&stubService{err: tt.err}, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
