package service

import (
	"errors"
)

// ErrValidation marks malformed or missing input. Handlers map it to 400;
// the wrapped detail becomes the response message.
var ErrValidation = errors.New("validation error")
