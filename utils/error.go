package utils

import (
	"errors"
	"fmt"
	"net/http"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

type ErrorKind string

const (
	ErrorKindValidation ErrorKind = "VALIDATION"
	ErrorKindNotFound   ErrorKind = "NOT_FOUND"
	ErrorKindConflict   ErrorKind = "CONFLICT"
	ErrorKindInternal   ErrorKind = "INTERNAL"
)

// AppError carries a stable machine-checkable code alongside the
// human-readable message. Code examples: "NoUnpostedRecords",
// "MissingAccountMapping", "MissingOrInvalidDate".
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func ValidationError(code string, message string) *AppError {
	return &AppError{Kind: ErrorKindValidation, Code: code, Message: message}
}

func NotFoundError(code string, message string) *AppError {
	return &AppError{Kind: ErrorKindNotFound, Code: code, Message: message}
}

func ConflictError(code string, message string) *AppError {
	return &AppError{Kind: ErrorKindConflict, Code: code, Message: message}
}

func InternalError(message string, cause error) *AppError {
	return &AppError{Kind: ErrorKindInternal, Code: "Internal", Message: message, Err: cause}
}

// KindOf maps any error to a taxonomy kind. Unknown errors are Internal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	if IsDuplicateKeyErr(err) {
		return ErrorKindConflict
	}
	return ErrorKindInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case ErrorKindValidation:
		return http.StatusBadRequest
	case ErrorKindNotFound:
		return http.StatusNotFound
	case ErrorKindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// MySQL duplicate entry (unique key violation).
func IsDuplicateKeyErr(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
