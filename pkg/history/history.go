package history

import (
	"context"
	"time"
)

// Querier answers how long an entity dwelled in a state recently. The
// distributor uses it as an interlock, so implementations must be safe
// for concurrent use.
type Querier interface {
	// CountInState returns how many state reports within the lookback
	// window carried exactly the given state.
	CountInState(ctx context.Context, entity, state string, lookback time.Duration) (int, error)
}

// Recorder also ingests state reports.
type Recorder interface {
	Querier
	Record(entity, state string, at time.Time) error
}
