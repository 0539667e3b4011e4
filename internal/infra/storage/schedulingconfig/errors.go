package schedulingconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда для локации нет собственной конфигурации
	ErrConfigNotFound = errors.New("schedulingconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedulingconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedulingconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedulingconfig.repository: failed to scan row")
)
