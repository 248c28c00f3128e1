package domain

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrNoListings = errors.New("no listings stored")
	// ErrNonPositivePrediction is returned by the price recommendation when the
	// model estimate is zero or negative and the percentage difference is undefined.
	ErrNonPositivePrediction = errors.New("predicted price must be positive")
)
