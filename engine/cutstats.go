package engine

import (
	"time"

	"github.com/apex/log"
)

// SearchStats collects node and cutoff counts for one search.
type SearchStats struct {
	Nodes       uint64
	LeafNodes   uint64
	BetaCutoffs uint64
	KillerCuts  uint64
	CacheProbes uint64
	CacheHits   uint64
}

func (s *SearchStats) reset() {
	*s = SearchStats{}
}

// HitRate is the fraction of evaluation cache probes that hit.
func (s SearchStats) HitRate() float64 {
	if s.CacheProbes == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(s.CacheProbes)
}

// Fields renders the counters for structured logging.
func (s SearchStats) Fields() log.Fields {
	return log.Fields{
		"nodes":        s.Nodes,
		"leaves":       s.LeafNodes,
		"beta_cutoffs": s.BetaCutoffs,
		"killer_cuts":  s.KillerCuts,
		"cache_probes": s.CacheProbes,
		"cache_hits":   s.CacheHits,
	}
}

func (s SearchStats) dump(logger log.Interface, elapsed time.Duration) {
	fields := s.Fields()
	fields["elapsed"] = elapsed.String()
	fields["nps"] = nps(s.Nodes, elapsed)
	fields["hit_rate"] = s.HitRate()
	logger.WithFields(fields).Info("search statistics")
}

func nps(nodes uint64, elapsed time.Duration) uint64 {
	ms := uint64(elapsed.Milliseconds())
	if ms == 0 {
		return nodes * 1000
	}
	return nodes * 1000 / ms
}
