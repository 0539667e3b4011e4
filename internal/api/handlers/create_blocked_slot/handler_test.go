package create_blocked_slot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/internal/infra/storage/memory"
	"github.com/m04kA/FloatBookingService/internal/service/calendar"
	"github.com/m04kA/FloatBookingService/internal/service/calendar/models"
	"github.com/m04kA/FloatBookingService/pkg/logger"
)

func TestHandler(t *testing.T) {
	store := memory.NewStore()
	h := NewHandler(calendar.NewService(store.BlockedSlots(), store.OperatingHours(), logger.Nop()), logger.Nop())

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"tank block", `{"locationId":"loc-1","tankId":"tank-2","startTime":"2026-03-02T10:00:00Z","endTime":"2026-03-02T12:00:00Z","reason":"pump service"}`, http.StatusCreated},
		{"recurring location block", `{"locationId":"loc-1","startTime":"2026-03-02T13:00:00Z","endTime":"2026-03-02T14:00:00Z","reason":"staff lunch","recurring":true}`, http.StatusCreated},
		{"end before start", `{"locationId":"loc-1","startTime":"2026-03-02T12:00:00Z","endTime":"2026-03-02T10:00:00Z","reason":"x"}`, http.StatusBadRequest},
		{"broken body", `{"locationId":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/blocked-slots", strings.NewReader(tt.body)))
			require.Equal(t, tt.status, w.Code, w.Body.String())

			if tt.status == http.StatusCreated {
				var resp models.BlockedSlotResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.ID)
				assert.Equal(t, "loc-1", resp.LocationID)
			}
		})
	}
}
