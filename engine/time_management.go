package engine

import (
	"context"
	"time"
)

// TimeHandler is the cooperative budget of a search: a caller context plus an
// optional wall-clock limit.
type TimeHandler struct {
	ctx         context.Context
	started     time.Time
	timeForMove time.Time
	hasDeadline bool
	stopSearch  bool
}

func (th *TimeHandler) StartTime(ctx context.Context, limit time.Duration) {
	th.ctx = ctx
	th.started = time.Now()
	th.stopSearch = false
	th.hasDeadline = limit > 0
	if th.hasDeadline {
		th.timeForMove = th.started.Add(limit)
	}
}

/*
  - True once the context is done or the time for this move has passed.
    The answer latches so that an aborted iteration unwinds quickly.
  - False while there is budget left.
*/
func (th *TimeHandler) TimeStatus() bool {
	if th.stopSearch {
		return true
	}
	if th.ctx != nil && th.ctx.Err() != nil {
		th.stopSearch = true
	} else if th.hasDeadline && th.timeForMove.Before(time.Now()) {
		th.stopSearch = true
	}
	return th.stopSearch
}

func (th *TimeHandler) Elapsed() time.Duration {
	return time.Since(th.started)
}
