package collector

import "errors"

var (
	ErrNotFound        = errors.New("no submission for device")
	ErrInvalidDeviceID = errors.New("invalid device id")
	ErrStoreFailed     = errors.New("failed to store submission")
	ErrStoreRead       = errors.New("failed to read submission")
	ErrIncompleteGroup = errors.New("incomplete field group")
)
