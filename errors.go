package keyfs

import "errors"

var (
	ErrInvalidKey      = errors.New("keyfs: invalid key")
	ErrInvalidPath     = errors.New("keyfs: invalid key path")
	ErrInvalidDocument = errors.New("keyfs: invalid document")
	ErrNoRemote        = errors.New("keyfs: no remote configured")
)
