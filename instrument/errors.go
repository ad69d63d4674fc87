package instrument

import "errors"

var (
	// ErrInvalidRegion reports a region that cannot be played, such as an
	// inverted key range or an unresolved sample
	ErrInvalidRegion = errors.New("invalid region")

	// ErrInvalidOption reports an option outside its accepted range
	ErrInvalidOption = errors.New("invalid instrument option")

	// ErrMissingSample is returned for an SFZ region without a sample opcode
	ErrMissingSample = errors.New("region has no sample")

	ErrUnknownLoopMode       = errors.New("unknown loop mode")
	ErrUnknownOverflowPolicy = errors.New("unknown overflow policy")
)
