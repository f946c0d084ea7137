package services

import "errors"

// ErrInvalidArgs marks argument-bag validation failures so the HTTP layer
// can tell caller mistakes apart from upstream failures.
var ErrInvalidArgs = errors.New("invalid arguments")
