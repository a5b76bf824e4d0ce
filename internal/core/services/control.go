package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driven"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
	"github.com/custodia-labs/cpufreqctl/internal/logger"
)

// Ensure ControlService implements the interface.
var _ driving.ControlService = (*ControlService)(nil)

// backendResolver yields the active backend.
type backendResolver interface {
	Resolve() (driven.Backend, error)
}

// ControlService applies the percentage model to the active backend.
// Limit reads hold the shared lock and limit writes the exclusive one,
// so they never interleave with another instance's probe.
type ControlService struct {
	backends   backendResolver
	locker     driven.Locker
	aggregator *Aggregator
}

// NewControlService creates a control service.
func NewControlService(backends backendResolver, locker driven.Locker, aggregator *Aggregator) *ControlService {
	if aggregator == nil {
		aggregator = NewAggregator(nil)
	}
	return &ControlService{
		backends:   backends,
		locker:     locker,
		aggregator: aggregator,
	}
}

// Turbo returns the turbo-boost state.
func (s *ControlService) Turbo(ctx context.Context) (domain.TurboState, error) {
	b, err := s.backends.Resolve()
	if err != nil {
		return "", err
	}
	state, err := b.Turbo(ctx)
	if err != nil {
		return "", domain.Internal(b.Name().String(), fmt.Errorf("get turbo: %w", err))
	}
	return state, nil
}

// SetTurbo enables or disables turbo boost.
func (s *ControlService) SetTurbo(ctx context.Context, state domain.TurboState) error {
	if _, err := domain.ParseTurboState(string(state)); err != nil {
		return err
	}
	b, err := s.backends.Resolve()
	if err != nil {
		return err
	}
	logger.Debug("set turbo %s on %s", state, b.Name())
	if err := b.SetTurbo(ctx, state); err != nil {
		return domain.Internal(b.Name().String(), fmt.Errorf("set turbo: %w", err))
	}
	return nil
}

// Min returns the minimum limit.
func (s *ControlService) Min(ctx context.Context) (domain.Percentage, error) {
	return s.readLimit(ctx, "min", func(b driven.Backend) (domain.Percentage, error) {
		return b.Min(ctx)
	})
}

// Max returns the maximum limit.
func (s *ControlService) Max(ctx context.Context) (domain.Percentage, error) {
	return s.readLimit(ctx, "max", func(b driven.Backend) (domain.Percentage, error) {
		return b.Max(ctx)
	})
}

// SetMin sets the minimum limit.
func (s *ControlService) SetMin(ctx context.Context, pct domain.Percentage) error {
	return s.writeLimit(ctx, "min", pct, func(b driven.Backend, p domain.Percentage) error {
		return b.SetMin(ctx, p)
	})
}

// SetMax sets the maximum limit.
func (s *ControlService) SetMax(ctx context.Context, pct domain.Percentage) error {
	return s.writeLimit(ctx, "max", pct, func(b driven.Backend, p domain.Percentage) error {
		return b.SetMax(ctx, p)
	})
}

// Reset restores the factory policy. Max is raised first so the min
// write never produces an intermediate min > max state.
func (s *ControlService) Reset(ctx context.Context) error {
	logger.Section("Reset")
	if err := s.SetMax(ctx, domain.MaxPercentage); err != nil {
		return fmt.Errorf("reset max: %w", err)
	}
	if err := s.SetMin(ctx, domain.MinPercentage); err != nil {
		return fmt.Errorf("reset min: %w", err)
	}
	if err := s.SetTurbo(ctx, domain.TurboOn); err != nil {
		return fmt.Errorf("reset turbo: %w", err)
	}
	return nil
}

// Frequencies reports the accepted limit range.
func (s *ControlService) Frequencies(ctx context.Context) (domain.FrequencyMode, error) {
	b, err := s.backends.Resolve()
	if err != nil {
		return domain.FrequencyMode{}, err
	}
	mode, err := b.Frequencies(ctx)
	if err != nil {
		return domain.FrequencyMode{}, domain.Internal(b.Name().String(), fmt.Errorf("info frequencies: %w", err))
	}
	return mode, nil
}

// CoreFrequencies returns every core's current frequency.
func (s *ControlService) CoreFrequencies(ctx context.Context) ([]domain.Frequency, error) {
	b, err := s.backends.Resolve()
	if err != nil {
		return nil, err
	}
	freqs, err := b.CoreFrequencies(ctx)
	if err != nil {
		return nil, domain.Internal(b.Name().String(), fmt.Errorf("read core frequencies: %w", err))
	}
	return freqs, nil
}

// Current summarises the current per-core frequencies.
func (s *ControlService) Current(ctx context.Context) (domain.CoreStatistics, error) {
	freqs, err := s.CoreFrequencies(ctx)
	if err != nil {
		return domain.CoreStatistics{}, err
	}
	logger.Debug("aggregating %d core frequencies", len(freqs))
	return s.aggregator.Aggregate(freqs)
}

func (s *ControlService) readLimit(
	ctx context.Context,
	bound string,
	read func(driven.Backend) (domain.Percentage, error),
) (domain.Percentage, error) {
	b, err := s.backends.Resolve()
	if err != nil {
		return 0, err
	}

	var pct domain.Percentage
	err = s.locker.WithShared(ctx, func() error {
		var rerr error
		pct, rerr = read(b)
		return rerr
	})
	if err != nil {
		return 0, domain.Internal(b.Name().String(), fmt.Errorf("get %s: %w", bound, err))
	}
	return pct.Clamp(), nil
}

func (s *ControlService) writeLimit(
	ctx context.Context,
	bound string,
	pct domain.Percentage,
	write func(driven.Backend, domain.Percentage) error,
) error {
	b, err := s.backends.Resolve()
	if err != nil {
		return err
	}

	clamped := pct.Clamp()
	if clamped != pct {
		logger.Warn("%s %d clamped to %d", bound, pct, clamped)
	}
	logger.Debug("set %s %d%% on %s", bound, clamped, b.Name())

	err = s.locker.WithExclusive(ctx, func() error {
		return write(b, clamped)
	})
	if err != nil {
		return domain.Internal(b.Name().String(), fmt.Errorf("set %s: %w", bound, err))
	}
	return nil
}
