package services

import (
	"sync"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driven"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
	"github.com/custodia-labs/cpufreqctl/internal/logger"
)

// Ensure BackendSelector implements the interface.
var _ driving.BackendService = (*BackendSelector)(nil)

// BackendSelector resolves the active backend once per process.
type BackendSelector struct {
	requested domain.BackendName
	backends  []driven.Backend

	once   sync.Once
	active driven.Backend
	err    error
}

// NewBackendSelector builds every registered backend in priority order.
// Backends without a builder are treated as unknown.
func NewBackendSelector(
	cfg domain.Config,
	locker driven.Locker,
	builders map[domain.BackendName]driven.BackendBuilder,
) *BackendSelector {
	s := &BackendSelector{requested: cfg.Backend}
	for _, name := range domain.AllBackends() {
		build, ok := builders[name]
		if !ok {
			continue
		}
		s.backends = append(s.backends, build(cfg, locker))
	}
	return s
}

// List probes every known backend.
func (s *BackendSelector) List() []driving.BackendStatus {
	statuses := make([]driving.BackendStatus, 0, len(s.backends))
	for _, b := range s.backends {
		statuses = append(statuses, driving.BackendStatus{
			Name:      b.Name(),
			Supported: b.Supported(),
		})
	}
	return statuses
}

// Current resolves the active backend and returns its name.
func (s *BackendSelector) Current() (domain.BackendName, error) {
	b, err := s.Resolve()
	if err != nil {
		return "", err
	}
	return b.Name(), nil
}

// Resolve returns the active backend, resolving it on first use.
// The outcome, including failure, is cached for the process lifetime.
func (s *BackendSelector) Resolve() (driven.Backend, error) {
	s.once.Do(func() {
		s.active, s.err = s.resolve()
		if s.err == nil {
			logger.Debug("backend resolved: %s (requested %s)", s.active.Name(), s.requested)
		}
	})
	return s.active, s.err
}

func (s *BackendSelector) resolve() (driven.Backend, error) {
	if s.requested == domain.BackendAutomatic || s.requested == "" {
		for _, b := range s.backends {
			if b.Supported() {
				return b, nil
			}
			logger.Debug("backend %s not supported, trying next", b.Name())
		}
		return nil, &domain.BackendNotSupportedError{Name: string(domain.BackendAutomatic)}
	}

	for _, b := range s.backends {
		if b.Name() != s.requested {
			continue
		}
		if !b.Supported() {
			return nil, &domain.BackendNotSupportedError{Name: string(s.requested)}
		}
		return b, nil
	}
	return nil, &domain.InvalidBackendError{Name: string(s.requested)}
}
