package get_operating_hours

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/internal/infra/storage/memory"
	"github.com/m04kA/FloatBookingService/internal/service/calendar"
	"github.com/m04kA/FloatBookingService/internal/service/calendar/models"
	"github.com/m04kA/FloatBookingService/pkg/logger"
)

func TestHandler(t *testing.T) {
	store := memory.NewStore()
	svc := calendar.NewService(store.BlockedSlots(), store.OperatingHours(), logger.Nop())
	_, err := svc.UpsertOperatingHours(context.Background(), "loc-1", 1, &models.UpsertOperatingHoursRequest{
		OpenTime:  "09:00",
		CloseTime: "21:00",
	})
	require.NoError(t, err)

	r := mux.NewRouter()
	r.HandleFunc("/locations/{locationId}/operating-hours", NewHandler(svc, logger.Nop()).Handle)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/locations/loc-1/operating-hours", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"openTime":"09:00"`)
	assert.Contains(t, w.Body.String(), `"dayOfWeek":1`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/locations/loc-2/operating-hours", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"locationId":"loc-2","days":[]}`, w.Body.String())
}
