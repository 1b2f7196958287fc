package zxwitness

import "errors"

var (
	// ErrIndexOutOfBounds is returned when a row or column index lies outside
	// the image.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrInvalidDimensions is returned when an image has no pixels or its
	// buffer does not match its declared size.
	ErrInvalidDimensions = errors.New("invalid dimensions")
)
