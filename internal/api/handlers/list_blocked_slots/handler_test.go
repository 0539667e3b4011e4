package list_blocked_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	for i, locationID := range []string{"loc-1", "loc-1", "loc-2"} {
		_, err := svc.CreateBlockedSlot(context.Background(), &models.CreateBlockedSlotRequest{
			LocationID: locationID,
			StartTime:  start.AddDate(0, 0, i),
			EndTime:    start.AddDate(0, 0, i).Add(time.Hour),
			Reason:     "maintenance",
		})
		require.NoError(t, err)
	}

	h := NewHandler(svc, time.UTC, logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/blocked-slots?locationId=loc-1&limit=1&page=2", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.BlockedSlotListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, start.AddDate(0, 0, 1), resp.Data[0].StartTime.UTC())

	for _, url := range []string{"/blocked-slots?limit=1000", "/blocked-slots?startDate=yesterday", "/blocked-slots?page=-1"} {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
	}
}
