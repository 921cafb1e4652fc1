package timeblock

import "errors"

var (
	// ErrConstraintViolation возвращается, когда значения нарушают CHECK-ограничения таблицы
	ErrConstraintViolation = errors.New("timeblock.repository: constraint violation")

	// ErrDuplicateExternalEvent возвращается, когда событие внешнего календаря уже импортировано
	ErrDuplicateExternalEvent = errors.New("timeblock.repository: external event already imported")

	// ErrTimeBlockNotFound возвращается, когда блокировка не найдена
	ErrTimeBlockNotFound = errors.New("timeblock.repository: time block not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeblock.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeblock.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeblock.repository: failed to scan row")
)
