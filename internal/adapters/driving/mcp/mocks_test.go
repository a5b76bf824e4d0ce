package mcp

import (
	"context"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
)

// mockControlService is a mock implementation of driving.ControlService.
type mockControlService struct {
	turbo domain.TurboState
	min   domain.Percentage
	max   domain.Percentage
	mode  domain.FrequencyMode
	cores []domain.Frequency
	err   error
	calls []string
}

func newMockControl() *mockControlService {
	return &mockControlService{
		turbo: domain.TurboOn,
		min:   20,
		max:   80,
		mode:  domain.NewContinuousMode(0, 100),
		cores: []domain.Frequency{800000, 1200000, 1600000, 2000000},
	}
}

func (m *mockControlService) Turbo(_ context.Context) (domain.TurboState, error) {
	return m.turbo, m.err
}

func (m *mockControlService) SetTurbo(_ context.Context, state domain.TurboState) error {
	m.calls = append(m.calls, "SetTurbo")
	if m.err != nil {
		return m.err
	}
	m.turbo = state
	return nil
}

func (m *mockControlService) Min(_ context.Context) (domain.Percentage, error) {
	return m.min, m.err
}

func (m *mockControlService) SetMin(_ context.Context, pct domain.Percentage) error {
	m.calls = append(m.calls, "SetMin")
	if m.err != nil {
		return m.err
	}
	m.min = min(pct, m.max)
	return nil
}

func (m *mockControlService) Max(_ context.Context) (domain.Percentage, error) {
	return m.max, m.err
}

func (m *mockControlService) SetMax(_ context.Context, pct domain.Percentage) error {
	m.calls = append(m.calls, "SetMax")
	if m.err != nil {
		return m.err
	}
	m.max = max(pct, m.min)
	return nil
}

func (m *mockControlService) Reset(_ context.Context) error {
	m.calls = append(m.calls, "Reset")
	if m.err != nil {
		return m.err
	}
	m.min, m.max, m.turbo = 0, 100, domain.TurboOn
	return nil
}

func (m *mockControlService) Frequencies(_ context.Context) (domain.FrequencyMode, error) {
	return m.mode, m.err
}

func (m *mockControlService) Current(_ context.Context) (domain.CoreStatistics, error) {
	return domain.CoreStatistics{Min: 800000, Max: 2000000, Avg: 1400000, Rnd: 1600000}, m.err
}

func (m *mockControlService) CoreFrequencies(_ context.Context) ([]domain.Frequency, error) {
	return m.cores, m.err
}

// mockBackendService is a mock implementation of driving.BackendService.
type mockBackendService struct {
	name domain.BackendName
	err  error
}

func (m *mockBackendService) List() []driving.BackendStatus {
	return []driving.BackendStatus{{Name: m.name, Supported: m.err == nil}}
}

func (m *mockBackendService) Current() (domain.BackendName, error) {
	return m.name, m.err
}

func newTestServer(control *mockControlService) (*Server, error) {
	return NewServer(&Ports{
		Control:  control,
		Backends: &mockBackendService{name: domain.BackendIntelPState},
	}, "test")
}
