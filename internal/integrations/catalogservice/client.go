package catalogservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client клиент для работы с каталогом услуг
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу по ID
func (c *Client) GetService(ctx context.Context, serviceID string) (*Service, error) {
	endpoint := fmt.Sprintf("%s/internal/services/%s", c.baseURL, url.PathEscape(serviceID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrServiceNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var service Service
	if err := json.NewDecoder(resp.Body).Decode(&service); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &service, nil
}

// GetServiceDuration возвращает длительность активной услуги в минутах
func (c *Client) GetServiceDuration(ctx context.Context, serviceID string) (int, error) {
	service, err := c.GetService(ctx, serviceID)
	if err != nil {
		if err == ErrServiceNotFound {
			c.log.Info("Service %s not found in catalog", serviceID)
			return 0, err
		}
		c.log.Error("Catalog service unavailable for service_id=%s: %v", serviceID, err)
		return 0, err
	}

	if !service.Active {
		c.log.Warn("Service %s is inactive", serviceID)
		return 0, ErrServiceInactive
	}
	if service.DurationMinutes <= 0 {
		return 0, fmt.Errorf("%w: service %s has non-positive duration %d", ErrInvalidResponse, serviceID, service.DurationMinutes)
	}

	return service.DurationMinutes, nil
}

// Static каталог с фиксированными длительностями из конфигурации
// Используется, когда внешний каталог не настроен
type Static struct {
	durations map[string]int
}

// NewStatic создает каталог из пар serviceID -> длительность в минутах
func NewStatic(durations map[string]int) *Static {
	copied := make(map[string]int, len(durations))
	for id, minutes := range durations {
		copied[id] = minutes
	}
	return &Static{durations: copied}
}

// GetServiceDuration возвращает длительность услуги в минутах
func (s *Static) GetServiceDuration(_ context.Context, serviceID string) (int, error) {
	minutes, ok := s.durations[serviceID]
	if !ok {
		return 0, ErrServiceNotFound
	}
	return minutes, nil
}
