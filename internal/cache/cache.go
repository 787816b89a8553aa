package cache

import (
	"context"
)

// Phase is the lifecycle state of a cache scope.
type Phase int

const (
	// PhaseEmpty means no fetch has completed or been attempted.
	PhaseEmpty Phase = iota
	// PhaseLoading means a fetch is in flight. Previously loaded data is
	// retained for display.
	PhaseLoading
	// PhaseReady means the scope holds server-confirmed data.
	PhaseReady
	// PhaseError means the last fetch failed. Previously loaded data is
	// retained so a failure never blanks a populated view.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// retryFetch runs fn up to retries additional times after a first failure.
// Only reads come through here; mutations are surfaced once and never
// retried automatically.
func retryFetch(ctx context.Context, retries int, fn func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= retries; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}
