package buffer

import "errors"

var (
	// ErrBufferNotFound возвращается, когда настройка буфера не найдена
	ErrBufferNotFound = errors.New("buffer.repository: buffer time not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("buffer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("buffer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("buffer.repository: failed to scan row")

	// ErrConstraintViolation возвращается, когда значения нарушают CHECK-ограничения таблицы
	ErrConstraintViolation = errors.New("buffer.repository: constraint violation")
)
