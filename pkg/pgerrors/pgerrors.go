package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые обрабатываются репозиториями
const (
	CodeUniqueViolation pq.ErrorCode = "23505"
	CodeCheckViolation  pq.ErrorCode = "23514"
)

// Code возвращает код ошибки PostgreSQL или пустую строку
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation returns true for unique constraint violations
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsCheckViolation returns true for CHECK constraint violations
func IsCheckViolation(err error) bool {
	return Code(err) == CodeCheckViolation
}
