package models

import "errors"

// Error classes shared by the service and API layers. Wrap them with
// fmt.Errorf("%w: ...") and test with errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("not the creator")
)
