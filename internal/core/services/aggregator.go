package services

import (
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

// errNoCores is returned when there is nothing to aggregate.
var errNoCores = errors.New("no core frequencies to aggregate")

// Aggregator summarises per-core frequency snapshots.
type Aggregator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAggregator creates an aggregator drawing Rnd samples from src.
// A nil src uses a randomly seeded PCG generator.
func NewAggregator(src rand.Source) *Aggregator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Aggregator{rng: rand.New(src)}
}

// Aggregate computes min, max, truncated average and one uniformly
// sampled value. The sample index is drawn anew on every call.
func (a *Aggregator) Aggregate(values []domain.Frequency) (domain.CoreStatistics, error) {
	if len(values) == 0 {
		return domain.CoreStatistics{}, domain.Internal("aggregator", errNoCores)
	}

	stats := domain.CoreStatistics{Min: values[0], Max: values[0]}
	var sum int64
	for _, v := range values {
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		sum += int64(v)
	}
	stats.Avg = domain.Frequency(sum / int64(len(values)))

	a.mu.Lock()
	idx := a.rng.IntN(len(values))
	a.mu.Unlock()
	stats.Rnd = values[idx]

	return stats, nil
}
