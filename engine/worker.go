package engine

import (
	"context"

	"github.com/apex/log"

	"cellchess/rules"
)

// Dispatch searches snapshot on its own goroutine and delivers exactly one
// Result on the returned channel, which is then closed. The snapshot is a
// value owned by the task; the caller's live board is never touched.
func Dispatch(ctx context.Context, snapshot rules.Board, cfg Config) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		logger := cfg.logger()
		logger.WithFields(log.Fields{
			"fen":   snapshot.FEN(),
			"depth": cfg.Depth,
		}).Debug("search dispatched")

		res, err := NewSearcher(cfg).Search(ctx, snapshot)
		res.Err = err
		if err != nil {
			logger.WithError(err).Warn("search failed")
		}
		out <- res
	}()
	return out
}
