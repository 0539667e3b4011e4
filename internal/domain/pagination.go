package domain

import "fmt"

const (
	DefaultPage      = 1
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Pagination параметры постраничной выборки
type Pagination struct {
	Page  int
	Limit int
}

// NewPagination нулевые значения заменяет значениями по умолчанию
func NewPagination(page, limit int) (Pagination, error) {
	if page == 0 {
		page = DefaultPage
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if page < 1 {
		return Pagination{}, fmt.Errorf("%w: page must be positive", ErrValidation)
	}
	if limit < 1 || limit > MaxPageLimit {
		return Pagination{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrValidation, MaxPageLimit)
	}
	return Pagination{Page: page, Limit: limit}, nil
}

// Offset смещение для SQL OFFSET
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page страница результатов
type Page[T any] struct {
	Data       []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// NewPage собирает страницу и считает общее число страниц
func NewPage[T any](data []T, total int, p Pagination) Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}
