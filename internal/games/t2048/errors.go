package t2048

import "errors"

var (
	ErrMissingSpawner   = errors.New("spawn policy is required")
	ErrInvalidConfig    = errors.New("invalid game configuration")
	ErrInvalidPlacement = errors.New("invalid spawn placement")
	ErrInvalidSnapshot  = errors.New("invalid snapshot")
)
