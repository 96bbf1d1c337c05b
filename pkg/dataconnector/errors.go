package dataconnector

import (
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by strict cache reads for keys that were never stored
var ErrKeyNotFound = errors.New("key not found")

// ConnectivityError is a transient failure to reach the data source.
// The polling loop logs it and tries again on the next cycle.
type ConnectivityError struct {
	URL string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("could not reach %s: %s", e.URL, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

func NewConnectivityError(url string, err error) error {
	return &ConnectivityError{URL: url, Err: err}
}

func IsConnectivityError(err error) bool {
	var connectivityError *ConnectivityError
	return errors.As(err, &connectivityError)
}
