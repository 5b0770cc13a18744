package analytics

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/talentpipe/ops-api/internal/model"
	"github.com/talentpipe/ops-api/internal/snapshot"
	"github.com/talentpipe/ops-api/pkg/logger"
	"github.com/talentpipe/ops-api/pkg/metrics"
)

// Summaries are cached by (snapshot version, window) identity. The TTL is
// short because TAT buckets shift with the clock at day resolution.
const (
	cacheTTL     = time.Minute
	cacheCleanup = 5 * time.Minute
)

type Service struct {
	store   *snapshot.Store
	cache   *gocache.Cache
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(store *snapshot.Store, logger *logger.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		cache:   gocache.New(cacheTTL, cacheCleanup),
		logger:  logger,
		metrics: metrics,
	}
}

// Summary runs (or serves from cache) one aggregation pass over the current
// snapshot.
func (s *Service) Summary(window model.Window) *Summary {
	snap := s.store.Current()
	key := fmt.Sprintf("%d|%s", snap.Version, window.Key())

	if v, ok := s.cache.Get(key); ok {
		s.metrics.AggregationCacheHits.Inc()
		return v.(*Summary)
	}
	s.metrics.AggregationCacheMisses.Inc()

	timer := prometheus.NewTimer(s.metrics.AggregationLatency)
	sum := Aggregate(snap, window, time.Now())
	timer.ObserveDuration()
	s.metrics.AggregationPasses.Inc()

	if sum.DatelessExcluded > 0 {
		s.logger.Warn("records without dates excluded from bounded window",
			"count", sum.DatelessExcluded, "window", window.Key())
	}

	s.cache.Set(key, sum, gocache.DefaultExpiration)
	return sum
}

// Drilldown resolves the exact record subset backing a summary number.
func (s *Service) Drilldown(sel Selector, f Filters) (interface{}, error) {
	snap := s.store.Current()
	switch sel.Kind {
	case model.EntityCandidate:
		return ResolveCandidates(snap, sel, f)
	case model.EntityRequirement:
		return ResolveRequirements(snap, sel, f, time.Now())
	case model.EntityClient:
		return ResolveClients(snap, sel, f)
	default:
		return nil, fmt.Errorf("unsupported entity kind %q", sel.Kind)
	}
}
