package vorbis

import "errors"

var ErrUnsupportedChannelLayout = errors.New("vorbis: only mono and stereo streams are supported")
