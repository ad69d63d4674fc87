package flac

import "errors"

var (
	ErrUnsupportedBitDepth      = errors.New("flac: unsupported bit depth")
	ErrUnsupportedChannelLayout = errors.New("flac: only mono and stereo streams are supported")
	ErrMissingSubframe          = errors.New("flac: frame is missing a channel subframe")
)
