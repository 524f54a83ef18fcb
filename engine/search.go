package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/apex/log"

	"cellchess/rules"
)

// MaxDepth is the deepest search the engine accepts.
const MaxDepth = 16

// Poll the budget every timeCheckMask+1 nodes.
const timeCheckMask = 63

// Result is the outcome of a search.
type Result struct {
	Move    rules.Move
	Score   int32 // white-relative
	MateIn  int   // moves to mate for the winner, negative when black mates; zero otherwise
	Depth   int   // deepest fully searched iteration
	Nodes   uint64
	Elapsed time.Duration
	Stats   SearchStats
	Err     error
}

func (r Result) String() string {
	return fmt.Sprintf("%s (%s, depth %d, %d nodes)", r.Move, FormatScore(r.Score, r.MateIn), r.Depth, r.Nodes)
}

// Searcher runs minimax with alpha-beta pruning over board value copies.
// A Searcher is not safe for concurrent use; Dispatch creates one per task.
type Searcher struct {
	cfg     Config
	logger  log.Interface
	cache   *EvalCache
	killers KillerStruct
	stats   SearchStats
	timer   TimeHandler

	mustFinish bool
	stopped    bool
}

func NewSearcher(cfg Config) *Searcher {
	return &Searcher{
		cfg:    cfg,
		logger: cfg.logger(),
		cache:  NewEvalCache(cfg.CacheSize),
	}
}

// BestMove is a one-shot search of b.
func BestMove(ctx context.Context, b *rules.Board, cfg Config) (Result, error) {
	return NewSearcher(cfg).Search(ctx, *b)
}

// Search deepens iteratively from depth 1 to the configured depth and
// returns the best move of the last iteration that ran to completion. The
// first iteration always completes; later ones stop early when ctx is done
// or the time limit passes.
func (s *Searcher) Search(ctx context.Context, b rules.Board) (Result, error) {
	result := Result{Move: rules.NullMove}
	if err := s.cfg.Validate(); err != nil {
		return result, err
	}
	if len(b.LegalMoves()) == 0 {
		return result, ErrNoLegalMove
	}

	s.stats.reset()
	s.killers.ClearKillers()
	s.timer.StartTime(ctx, s.cfg.MoveTime)

	for depth := 1; depth <= s.cfg.Depth; depth++ {
		s.mustFinish = depth == 1
		s.stopped = false

		best, score, ok := s.rootsearch(&b, depth, result.Move)
		if !ok {
			s.logger.WithFields(log.Fields{
				"depth":   depth,
				"elapsed": s.timer.Elapsed().String(),
			}).Debug("search iteration aborted")
			break
		}

		result.Move = best
		result.Score = score
		result.Depth = depth
		result.MateIn = mateIn(score, depth)

		s.logger.WithFields(log.Fields{
			"depth":   depth,
			"score":   FormatScore(score, result.MateIn),
			"nodes":   s.stats.Nodes,
			"best":    best.String(),
			"elapsed": s.timer.Elapsed().String(),
		}).Debug("search iteration")

		// Shallower iterations found no mate, so this one is the fastest.
		if IsMateScore(score) {
			break
		}
	}

	result.Nodes = s.stats.Nodes
	result.Elapsed = s.timer.Elapsed()
	result.Stats = s.stats
	if s.cfg.LogStats {
		s.stats.dump(s.logger, result.Elapsed)
	}
	return result, nil
}

func (s *Searcher) rootsearch(b *rules.Board, depth int, pvMove rules.Move) (rules.Move, int32, bool) {
	list := scoreMovesList(b, b.LegalMoves(), 0, pvMove, &s.killers)
	maximizing := b.Turn() == rules.White
	alpha, beta := -infinity, infinity
	bestMove := rules.NullMove
	bestScore := worstScore(maximizing)

	for i := range list.moves {
		orderNextMove(i, &list)
		m := list.moves[i].move
		score := s.alphabeta(applied(b, m), alpha, beta, depth-1, 1)
		if s.stopped {
			return bestMove, bestScore, false
		}
		if improves(score, bestScore, maximizing) {
			bestScore, bestMove = score, m
		}
		if maximizing {
			alpha = Max32(alpha, bestScore)
		} else {
			beta = Min32(beta, bestScore)
		}
	}
	return bestMove, bestScore, true
}

func (s *Searcher) alphabeta(b *rules.Board, alpha, beta int32, depth, ply int) int32 {
	s.stats.Nodes++
	if !s.mustFinish && s.stats.Nodes&timeCheckMask == 0 && s.timer.TimeStatus() {
		s.stopped = true
	}
	if s.stopped {
		return 0
	}

	if depth == 0 || b.GameOver() {
		return s.evaluate(b, depth)
	}

	list := scoreMovesList(b, b.LegalMoves(), ply, rules.NullMove, &s.killers)
	maximizing := b.Turn() == rules.White
	best := worstScore(maximizing)

	for i := range list.moves {
		orderNextMove(i, &list)
		m := list.moves[i].move
		score := s.alphabeta(applied(b, m), alpha, beta, depth-1, ply+1)
		if s.stopped {
			return 0
		}
		if improves(score, best, maximizing) {
			best = score
		}
		if maximizing {
			alpha = Max32(alpha, best)
		} else {
			beta = Min32(beta, best)
		}
		if alpha >= beta {
			s.stats.BetaCutoffs++
			if s.killers.IsKiller(m, ply) {
				s.stats.KillerCuts++
			}
			if m.Promotion == rules.PieceTypeNone && !b.IsCapture(m) {
				s.killers.InsertKiller(m, ply)
			}
			break
		}
	}
	return best
}

// evaluate scores a leaf. Mate scores grow with the depth left so that a
// mate found closer to the root wins over a slower one.
func (s *Searcher) evaluate(b *rules.Board, depth int) int32 {
	s.stats.LeafNodes++
	if b.GameOver() {
		score := Evaluate(b, s.cfg.Weights)
		switch {
		case score >= MateScore:
			return score + int32(depth)
		case score <= -MateScore:
			return score - int32(depth)
		}
		return score
	}

	hash := b.Hash()
	s.stats.CacheProbes++
	if score, ok := s.cache.Probe(hash); ok {
		s.stats.CacheHits++
		return score
	}
	score := Evaluate(b, s.cfg.Weights)
	s.cache.Store(hash, score)
	return score
}

func applied(b *rules.Board, m rules.Move) *rules.Board {
	child := *b
	if !child.ApplyMove(m) {
		panic(fmt.Sprintf("engine: generated move %s rejected on %s", m, b.FEN()))
	}
	return &child
}

func worstScore(maximizing bool) int32 {
	if maximizing {
		return -infinity
	}
	return infinity
}

func improves(score, best int32, maximizing bool) bool {
	if maximizing {
		return score > best
	}
	return score < best
}

// mateIn converts a root mate score at the given iteration depth into a
// signed move count.
func mateIn(score int32, depth int) int {
	if !IsMateScore(score) {
		return 0
	}
	plies := depth - int(abs32(score)-MateScore)
	moves := (plies + 1) / 2
	if score < 0 {
		return -moves
	}
	return moves
}
