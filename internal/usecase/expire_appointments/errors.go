package expire_appointments

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("expire_appointments: internal error")
)
