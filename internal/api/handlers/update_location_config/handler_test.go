package update_location_config

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FloatBookingService/internal/infra/storage/memory"
	"github.com/m04kA/FloatBookingService/internal/service/config"
	"github.com/m04kA/FloatBookingService/pkg/logger"
)

func TestHandler(t *testing.T) {
	svc := config.NewService(memory.NewStore().SchedulingConfigs(), logger.Nop())

	r := mux.NewRouter()
	r.HandleFunc("/locations/{locationId}/config", NewHandler(svc, logger.Nop()).Handle)
	do := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/locations/loc-1/config", strings.NewReader(body)))
		return w
	}

	w := do(`{"slotGranularityMinutes":15}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slotGranularityMinutes":15`)
	assert.Contains(t, w.Body.String(), `"isDefault":false`)

	assert.Equal(t, http.StatusBadRequest, do(`{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(`{"slotGranularityMinutes":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(`{"advanceBookingDays":"ten"}`).Code)
}
