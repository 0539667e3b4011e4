package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/FloatBookingService/internal/api/handlers"
)

// StaffIDHeader заголовок с идентификатором сотрудника
const StaffIDHeader = "X-Staff-ID"

const msgMissingStaffID = "требуется заголовок X-Staff-ID"

type staffKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Staff пропускает только запросы с X-Staff-ID
// Идентификатор не проверяется: аутентификация выполняется на шлюзе
func Staff(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			staffID := strings.TrimSpace(r.Header.Get(StaffIDHeader))
			if staffID == "" {
				logger.Warn("%s %s - Missing staff id, correlation_id=%s",
					r.Method, r.URL.Path, CorrelationIDFromContext(r.Context()))
				handlers.RespondUnauthorized(w, msgMissingStaffID)
				return
			}

			logger.Info("%s %s - Staff request: staff_id=%s", r.Method, r.URL.Path, staffID)
			ctx := context.WithValue(r.Context(), staffKey{}, staffID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaffIDFromContext возвращает ID сотрудника, выставленный middleware Staff
func StaffIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(staffKey{}).(string)
	return id
}
