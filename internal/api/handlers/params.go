package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/FloatBookingService/internal/domain"
)

// QueryString возвращает необязательный строковый параметр
func QueryString(r *http.Request, name string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil
	}
	return &v
}

// QueryInt возвращает целочисленный параметр; отсутствующий параметр = 0
func QueryInt(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

// QueryDate возвращает необязательную дату YYYY-MM-DD в часовом поясе loc
func QueryDate(r *http.Request, name string, loc *time.Location) (*time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(domain.DateFormat, v, loc)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date in format YYYY-MM-DD", name)
	}
	return &d, nil
}
