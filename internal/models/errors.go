package models

import "errors"

// ErrInvalidInput is returned when a caller hands the scoring core or the
// feedback ledger input it cannot work with (empty segment list, empty route id).
var ErrInvalidInput = errors.New("invalid input")
