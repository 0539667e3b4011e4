package operatinghours

import "errors"

var (
	// ErrOperatingHoursNotFound возвращается, когда для дня недели нет записи
	ErrOperatingHoursNotFound = errors.New("operatinghours.repository: operating hours not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("operatinghours.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("operatinghours.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("operatinghours.repository: failed to scan row")
)
