package lph

import "errors"

var ErrFrameSizeInvalid = errors.New("lph: frame size must be in (0, 512]")
