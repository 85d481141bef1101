package plan

import "errors"

var (
	// ErrNotFound is returned for unknown action ids and goal keys.
	ErrNotFound = errors.New("not found")
	// ErrInvalidGoalValue is returned when a goal setter rejects its input.
	ErrInvalidGoalValue = errors.New("invalid goal value")
	// ErrUninitialized is returned by queries made before Initialize.
	ErrUninitialized = errors.New("plan not initialized")
	// ErrNoState is returned by a Repository that holds no record yet.
	ErrNoState = errors.New("no saved state")
)
