package storage

import (
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

// NotFoundError is returned when a requested row does not exist.
type NotFoundError struct {
	Table string
	Key   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s: no row for %q", e.Table, e.Key)
}

// NotFound marks the error type for callers matching via errors.As.
func (e NotFoundError) NotFound() {}

// IsNotFound reports whether err represents a missing row, either from
// this package or from the table service itself.
func IsNotFound(err error) bool {
	var nf NotFoundError
	if errors.As(err, &nf) {
		return true
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == 404
	}
	return false
}

func notFound(table, key string) error {
	return NotFoundError{Table: table, Key: key}
}
