package catalogservice

// Service модель услуги из каталога
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Active          bool   `json:"active"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
