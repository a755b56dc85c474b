package errors

import "fmt"

var (
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrTableFull       = fmt.Errorf("table is full")
	ErrTableStarted    = fmt.Errorf("table has already started")
	ErrBetLimitReached = fmt.Errorf("bet limit reached")
	ErrNoTableBound    = fmt.Errorf("no table bound to this connection")
	ErrPlayerNotSeated = fmt.Errorf("player is not seated at this table")
	ErrInvalidSecret   = fmt.Errorf("invalid admin secret")
	ErrWorkerPanic     = fmt.Errorf("worker panic")
)
