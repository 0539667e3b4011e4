package idempotency

import "errors"

var (
	// ErrNotFound возвращается, когда по ключу ничего не сохранено
	ErrNotFound = errors.New("idempotency.store: key not found")

	// ErrStore возвращается при ошибке обращения к Redis
	ErrStore = errors.New("idempotency.store: redis failure")

	// ErrDecode возвращается, когда сохраненное значение повреждено
	ErrDecode = errors.New("idempotency.store: failed to decode record")
)
