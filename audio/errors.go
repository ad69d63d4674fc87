// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrUnknownFormat is returned when no decoder is registered for a file extension.
	ErrUnknownFormat = errors.New("unknown audio format")

	// ErrUnsupportedChannels is returned for sources with other than 1 or 2 channels.
	ErrUnsupportedChannels = errors.New("only mono and stereo sources are supported")
)
