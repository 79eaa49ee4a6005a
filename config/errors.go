package config

import "errors"

var (
	ErrInterruptRange   = errors.New("interrupt not available on target")
	ErrPriorityRange    = errors.New("priority exceeds target priority bits")
	ErrNotEnableable    = errors.New("exception has no enable bit")
	ErrFixedPriority    = errors.New("exception priority is fixed")
	ErrUnknownException = errors.New("unknown exception")
	ErrReloadOverflow   = errors.New("period does not fit the 24-bit reload register")
	ErrZeroPeriod       = errors.New("period must be at least 1ms")
	ErrUnknownMode      = errors.New("unknown systick mode")
	ErrUnknownTarget    = errors.New("unknown target")
)
