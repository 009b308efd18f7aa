package advisor

import "errors"

var (
	// ErrInvalidCoordinate marks a query whose latitude or longitude is
	// off the globe.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrUnknownCrop marks a crop filter entry not present in the
	// catalog.
	ErrUnknownCrop = errors.New("unknown crop")

	// ErrInvalidArea marks a non-positive land area.
	ErrInvalidArea = errors.New("land area must be positive")
)
