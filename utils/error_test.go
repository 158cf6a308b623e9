package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	mysqlDriver "github.com/go-sql-driver/mysql"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ValidationError("InvalidAmount", "bad amount"), http.StatusBadRequest},
		{NotFoundError("NotFound", "missing"), http.StatusNotFound},
		{ConflictError("Conflict", "already posted"), http.StatusConflict},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{&mysqlDriver.MySQLError{Number: 1062}, http.StatusConflict},
	}

	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := ConflictError("Conflict", "batch already posted")
	wrapped := fmt.Errorf("posting failed: %w", inner)
	if got := KindOf(wrapped); got != ErrorKindConflict {
		t.Errorf("KindOf(wrapped) = %q, want %q", got, ErrorKindConflict)
	}
}

func TestIsDuplicateKeyErr(t *testing.T) {
	if !IsDuplicateKeyErr(&mysqlDriver.MySQLError{Number: 1062}) {
		t.Error("1062 not detected as duplicate key")
	}
	if IsDuplicateKeyErr(&mysqlDriver.MySQLError{Number: 1213}) {
		t.Error("1213 detected as duplicate key")
	}
	if IsDuplicateKeyErr(errors.New("plain")) {
		t.Error("plain error detected as duplicate key")
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := InternalError("create cash transaction", cause)
	if !errors.Is(err, cause) {
		t.Error("InternalError does not unwrap to its cause")
	}
	if err.Error() != "create cash transaction: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
}
