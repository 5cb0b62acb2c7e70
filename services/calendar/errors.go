package calendar

import "fmt"

// GatewayError wraps a failed calendar provider call.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("calendar gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func gatewayErr(op string, err error) error {
	return &GatewayError{Op: op, Err: err}
}
