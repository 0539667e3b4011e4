package domain

import "errors"

// Базовые категории ошибок
// Пакеты объявляют свои ошибки поверх них: fmt.Errorf("%w: ...", domain.ErrConflict),
// а HTTP-слой по ним выбирает код ответа
var (
	// ErrValidation некорректные входные данные (400)
	ErrValidation = errors.New("validation error")

	// ErrConflict конфликт состояния: слот занят или запись в терминальном статусе (409)
	ErrConflict = errors.New("conflict")

	// ErrNotFound сущность не найдена (404)
	ErrNotFound = errors.New("entity not found")
)
