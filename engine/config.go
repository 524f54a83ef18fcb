package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/apex/log"
)

// Weights are the static evaluation terms, in centipawns.
type Weights struct {
	Pawn   int32 `json:"pawn"`
	Knight int32 `json:"knight"`
	Bishop int32 `json:"bishop"`
	Rook   int32 `json:"rook"`
	Queen  int32 `json:"queen"`
	King   int32 `json:"king"`

	BlockedPawn  int32 `json:"blocked_pawn"`
	DoubledPawn  int32 `json:"doubled_pawn"`
	IsolatedPawn int32 `json:"isolated_pawn"`
	Mobility     int32 `json:"mobility"`
}

// DefaultWeights returns the stock evaluation weights.
func DefaultWeights() Weights {
	return Weights{
		Pawn:         100,
		Knight:       320,
		Bishop:       330,
		Rook:         500,
		Queen:        900,
		King:         20000,
		BlockedPawn:  20,
		DoubledPawn:  20,
		IsolatedPawn: 15,
		Mobility:     5,
	}
}

// Config controls a search. In JSON the move time is given as
// time_limit_ms.
type Config struct {
	Depth     int           `json:"depth"`
	MoveTime  time.Duration `json:"-"`
	CacheSize int           `json:"cache_size"`
	LogStats  bool          `json:"log_stats"`
	Weights   Weights       `json:"weights"`

	Logger log.Interface `json:"-"`
}

func (c *Config) UnmarshalJSON(data []byte) error {
	type plain Config
	aux := struct {
		*plain
		TimeLimitMs *int64 `json:"time_limit_ms"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.TimeLimitMs != nil {
		c.MoveTime = time.Duration(*aux.TimeLimitMs) * time.Millisecond
	}
	return nil
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig searches three plies with no time limit.
func DefaultConfig() Config {
	return Config{
		Depth:     3,
		CacheSize: 1 << 16,
		Weights:   DefaultWeights(),
		Logger:    log.Log,
	}
}

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func WithDepth(depth int) Option {
	return func(c *Config) { c.Depth = depth }
}

// WithTimeLimit bounds the wall-clock time of a search. Zero means no limit.
func WithTimeLimit(d time.Duration) Option {
	return func(c *Config) { c.MoveTime = d }
}

func WithLogger(l log.Interface) Option {
	return func(c *Config) { c.Logger = l }
}

func WithWeights(w Weights) Option {
	return func(c *Config) { c.Weights = w }
}

// WithCacheSize sets the number of evaluation cache entries. Zero disables the cache.
func WithCacheSize(n int) Option {
	return func(c *Config) { c.CacheSize = n }
}

func (c Config) Validate() error {
	if c.Depth < 1 || c.Depth > MaxDepth {
		return fmt.Errorf("%w: depth %d outside [1, %d]", ErrInvalidConfig, c.Depth, MaxDepth)
	}
	if c.MoveTime < 0 {
		return fmt.Errorf("%w: negative time limit %s", ErrInvalidConfig, c.MoveTime)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: negative cache size %d", ErrInvalidConfig, c.CacheSize)
	}
	return nil
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read engine config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) logger() log.Interface {
	if c.Logger == nil {
		return log.Log
	}
	return c.Logger
}
