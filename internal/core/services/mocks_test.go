package services

import (
	"context"
	"sync"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driven"
)

// mockBackend is an in-memory driven.Backend recording every call.
type mockBackend struct {
	mu sync.Mutex

	name      domain.BackendName
	supported bool

	turbo domain.TurboState
	min   domain.Percentage
	max   domain.Percentage
	mode  domain.FrequencyMode
	cores []domain.Frequency

	err   error
	calls []string
}

func newMockBackend(name domain.BackendName, supported bool) *mockBackend {
	return &mockBackend{
		name:      name,
		supported: supported,
		turbo:     domain.TurboOff,
		min:       40,
		max:       60,
		mode:      domain.NewContinuousMode(0, 100),
		cores:     []domain.Frequency{800000, 1200000, 1600000, 2000000},
	}
}

func (m *mockBackend) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.err
}

func (m *mockBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockBackend) Name() domain.BackendName { return m.name }

func (m *mockBackend) Supported() bool { return m.supported }

func (m *mockBackend) Turbo(_ context.Context) (domain.TurboState, error) {
	if err := m.record("Turbo"); err != nil {
		return "", err
	}
	return m.turbo, nil
}

func (m *mockBackend) SetTurbo(_ context.Context, state domain.TurboState) error {
	if err := m.record("SetTurbo"); err != nil {
		return err
	}
	m.turbo = state
	return nil
}

func (m *mockBackend) Min(_ context.Context) (domain.Percentage, error) {
	if err := m.record("Min"); err != nil {
		return 0, err
	}
	return m.min, nil
}

func (m *mockBackend) SetMin(_ context.Context, pct domain.Percentage) error {
	if err := m.record("SetMin"); err != nil {
		return err
	}
	if pct > m.max {
		pct = m.max
	}
	m.min = pct
	return nil
}

func (m *mockBackend) Max(_ context.Context) (domain.Percentage, error) {
	if err := m.record("Max"); err != nil {
		return 0, err
	}
	return m.max, nil
}

func (m *mockBackend) SetMax(_ context.Context, pct domain.Percentage) error {
	if err := m.record("SetMax"); err != nil {
		return err
	}
	if pct < m.min {
		pct = m.min
	}
	m.max = pct
	return nil
}

func (m *mockBackend) Frequencies(_ context.Context) (domain.FrequencyMode, error) {
	if err := m.record("Frequencies"); err != nil {
		return domain.FrequencyMode{}, err
	}
	return m.mode, nil
}

func (m *mockBackend) CoreFrequencies(_ context.Context) ([]domain.Frequency, error) {
	if err := m.record("CoreFrequencies"); err != nil {
		return nil, err
	}
	return m.cores, nil
}

// staticResolver always resolves to the same backend or error.
type staticResolver struct {
	backend driven.Backend
	err     error
}

func (r staticResolver) Resolve() (driven.Backend, error) {
	return r.backend, r.err
}

// builderFor returns a BackendBuilder yielding b and counting builds.
func builderFor(b driven.Backend, builds *int) driven.BackendBuilder {
	return func(_ domain.Config, _ driven.Locker) driven.Backend {
		if builds != nil {
			*builds++
		}
		return b
	}
}
