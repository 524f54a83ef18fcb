// Package game owns the live board of an interactive session and mediates
// between the human input interfaces and the background search.
package game

import (
	"context"
	"fmt"
	"sync"

	"github.com/apex/log"
	"golang.org/x/exp/slices"

	"cellchess/engine"
	"cellchess/rules"
)

// Session is a single game between a local player and the engine.
// It is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	board    *rules.Board
	startFEN string
	records  []MoveRecord
	cfg      engine.Config
	logger   log.Interface

	thinking bool
	pending  <-chan engine.Result
	cancel   context.CancelFunc

	// Board before a touch-played pawn move that now awaits its promotion.
	prePromotion *rules.Board
}

type Option func(*Session)

func WithEngineConfig(cfg engine.Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

func WithLogger(l log.Interface) Option {
	return func(s *Session) { s.logger = l }
}

// New starts a session from the initial position.
func New(opts ...Option) *Session {
	s := &Session{
		cfg:    engine.DefaultConfig(),
		logger: log.Log,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.Logger == nil {
		s.cfg.Logger = s.logger
	}
	s.reset(rules.NewBoard())
	return s
}

func (s *Session) reset(b *rules.Board) {
	s.board = b
	s.startFEN = b.FEN()
	s.records = nil
	s.prePromotion = nil
}

// Reset returns to the initial position.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thinking {
		return ErrThinking
	}
	s.reset(rules.NewBoard())
	s.logger.Info("game reset")
	return nil
}

// LoadFEN replaces the live board with the given position.
func (s *Session) LoadFEN(fen string) error {
	b, err := rules.ParseFEN(fen)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thinking {
		return ErrThinking
	}
	s.reset(b)
	s.logger.WithField("fen", s.startFEN).Info("position loaded")
	return nil
}

// Board returns a copy of the live board.
func (s *Session) Board() rules.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.board
}

func (s *Session) View() [64]rules.CellView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.View()
}

func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.FEN()
}

// StartFEN is the position the move record starts from.
func (s *Session) StartFEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startFEN
}

func (s *Session) Thinking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.thinking
}

// Moves returns a copy of the move record.
func (s *Session) Moves() []MoveRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

func (s *Session) MoveText() string {
	return MoveText(s.Moves())
}

// Evaluate returns the static evaluation of the live board.
func (s *Session) Evaluate() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.Evaluate(s.board, s.cfg.Weights)
}

// Touch forwards a tap to the board. A tap that completes a move is
// recorded; a pawn move awaiting its promotion is recorded by Promote.
func (s *Session) Touch(sq rules.Square) (rules.TouchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thinking {
		return rules.TouchIgnored, ErrThinking
	}
	pre := *s.board
	res := s.board.Touch(sq)
	if res != rules.TouchMoved {
		return res, nil
	}
	if s.board.PromotionPending() {
		s.prePromotion = &pre
		return res, nil
	}
	from, to := s.board.LastMove()
	s.record(&pre, rules.Move{From: from, To: to}, false)
	return res, nil
}

// Promote completes a pending promotion. An invalid choice, or no pending
// promotion, reports false.
func (s *Session) Promote(pt rules.PieceType) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thinking {
		return false, ErrThinking
	}
	if !slices.Contains(rules.PromotionTypes[:], pt) || !s.board.Promote(pt) {
		return false, nil
	}
	from, to := s.board.LastMove()
	m := rules.Move{From: from, To: to, Promotion: pt}
	pre := s.prePromotion
	s.prePromotion = nil
	if pre == nil {
		s.logger.WithField("move", m.String()).Warn("promotion without a recorded pawn move, not recorded")
		return true, nil
	}
	s.record(pre, m, false)
	return true, nil
}

// Play applies a complete move through the same executor as the engine.
func (s *Session) Play(m rules.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thinking {
		return ErrThinking
	}
	if s.board.GameOver() {
		return ErrGameOver
	}
	pre := *s.board
	if !s.board.ApplyMove(m) {
		return fmt.Errorf("%w: %s is not legal here", rules.ErrInvalidMove, m)
	}
	s.record(&pre, m, false)
	return nil
}

// StartEngine hands a snapshot of the live board to a background search and
// blocks human input until the result is applied by AwaitEngine or PollEngine.
func (s *Session) StartEngine(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.thinking {
		return ErrThinking
	}
	if s.board.GameOver() {
		return ErrGameOver
	}
	if s.board.PromotionPending() {
		return ErrNoLegalMove
	}
	ctx, cancel := context.WithCancel(ctx)
	s.thinking = true
	s.cancel = cancel
	s.pending = engine.Dispatch(ctx, *s.board, s.cfg)
	s.logger.WithFields(log.Fields{
		"turn":  s.board.Turn().String(),
		"depth": s.cfg.Depth,
	}).Info("engine thinking")
	return nil
}

// StopEngine asks a running search to return early. The result still has to
// be collected with AwaitEngine or PollEngine.
func (s *Session) StopEngine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// AwaitEngine blocks until the search finishes, then plays its move.
func (s *Session) AwaitEngine(ctx context.Context) (engine.Result, error) {
	s.mu.Lock()
	if !s.thinking {
		s.mu.Unlock()
		return engine.Result{Move: rules.NullMove}, ErrNotThinking
	}
	ch := s.pending
	s.mu.Unlock()

	select {
	case res, ok := <-ch:
		if !ok {
			return engine.Result{Move: rules.NullMove}, ErrNotThinking
		}
		return s.finishEngine(ch, res)
	case <-ctx.Done():
		return engine.Result{Move: rules.NullMove}, ctx.Err()
	}
}

// PollEngine plays the engine's move if the search has finished. ready is
// false while it is still running.
func (s *Session) PollEngine() (res engine.Result, ready bool, err error) {
	s.mu.Lock()
	if !s.thinking {
		s.mu.Unlock()
		return engine.Result{Move: rules.NullMove}, false, ErrNotThinking
	}
	ch := s.pending
	s.mu.Unlock()

	select {
	case res, ok := <-ch:
		if !ok {
			return engine.Result{Move: rules.NullMove}, false, ErrNotThinking
		}
		res, err := s.finishEngine(ch, res)
		return res, true, err
	default:
		return engine.Result{Move: rules.NullMove}, false, nil
	}
}

func (s *Session) finishEngine(ch <-chan engine.Result, res engine.Result) (engine.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != ch {
		return res, ErrNotThinking
	}
	s.thinking = false
	s.pending = nil
	s.cancel()
	s.cancel = nil

	if res.Err != nil {
		return res, res.Err
	}
	pre := *s.board
	if !s.board.ApplyMove(res.Move) {
		return res, fmt.Errorf("%w: engine move %s rejected", rules.ErrInvalidMove, res.Move)
	}
	s.logger.WithFields(log.Fields{
		"score": engine.FormatScore(res.Score, res.MateIn),
		"depth": res.Depth,
		"nodes": res.Nodes,
	}).Debug("engine result")
	s.record(&pre, res.Move, true)
	return res, nil
}

// record appends m, played on pre, to the move list and logs the outcome.
// Callers hold s.mu.
func (s *Session) record(pre *rules.Board, m rules.Move, byEngine bool) {
	san, err := SAN(pre, m)
	if err != nil {
		s.logger.WithError(err).Warn("falling back to coordinate notation")
		san = m.String()
	}
	rec := MoveRecord{
		Number: pre.FullmoveNumber(),
		Color:  pre.Turn().String(),
		UCI:    m.String(),
		SAN:    san,
		Engine: byEngine,
		move:   m,
	}
	s.records = append(s.records, rec)
	s.logger.WithFields(log.Fields{
		"move":   rec.UCI,
		"san":    rec.SAN,
		"color":  rec.Color,
		"engine": byEngine,
	}).Info("move played")

	if st := statusOf(s.board, false); st.Over() {
		s.logger.WithFields(log.Fields{
			"result": st.Result(),
			"reason": st.Reason(),
		}).Info("game over")
	}
}
