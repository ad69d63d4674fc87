package driver

import "errors"

var ErrInvalidBlockSize = errors.New("block size must be positive")
