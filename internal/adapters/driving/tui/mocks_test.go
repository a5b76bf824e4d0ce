package tui

import (
	"context"
	"sync"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
)

// MockControlService is a mock implementation of driving.ControlService.
type MockControlService struct {
	mu    sync.Mutex
	turbo domain.TurboState
	min   domain.Percentage
	max   domain.Percentage
	cores []domain.Frequency
	err   error
	calls []string
}

func newMockControl() *MockControlService {
	return &MockControlService{
		turbo: domain.TurboOn,
		min:   20,
		max:   80,
		cores: []domain.Frequency{800000, 1200000, 1600000, 2000000},
	}
}

func (m *MockControlService) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.err
}

func (m *MockControlService) Turbo(_ context.Context) (domain.TurboState, error) {
	return m.turbo, m.record("Turbo")
}

func (m *MockControlService) SetTurbo(_ context.Context, state domain.TurboState) error {
	if err := m.record("SetTurbo"); err != nil {
		return err
	}
	m.turbo = state
	return nil
}

func (m *MockControlService) Min(_ context.Context) (domain.Percentage, error) {
	return m.min, m.record("Min")
}

func (m *MockControlService) SetMin(_ context.Context, pct domain.Percentage) error {
	if err := m.record("SetMin"); err != nil {
		return err
	}
	m.min = pct
	return nil
}

func (m *MockControlService) Max(_ context.Context) (domain.Percentage, error) {
	return m.max, m.record("Max")
}

func (m *MockControlService) SetMax(_ context.Context, pct domain.Percentage) error {
	if err := m.record("SetMax"); err != nil {
		return err
	}
	m.max = pct
	return nil
}

func (m *MockControlService) Reset(_ context.Context) error {
	if err := m.record("Reset"); err != nil {
		return err
	}
	m.min, m.max, m.turbo = 0, 100, domain.TurboOn
	return nil
}

func (m *MockControlService) Frequencies(_ context.Context) (domain.FrequencyMode, error) {
	return domain.NewContinuousMode(0, 100), m.record("Frequencies")
}

func (m *MockControlService) Current(_ context.Context) (domain.CoreStatistics, error) {
	return domain.CoreStatistics{Min: 800000, Max: 2000000, Avg: 1400000, Rnd: 1200000}, m.record("Current")
}

func (m *MockControlService) CoreFrequencies(_ context.Context) ([]domain.Frequency, error) {
	return m.cores, m.record("CoreFrequencies")
}

// MockBackendService is a mock implementation of driving.BackendService.
type MockBackendService struct {
	name domain.BackendName
	err  error
}

func (m *MockBackendService) List() []driving.BackendStatus {
	return []driving.BackendStatus{{Name: m.name, Supported: m.err == nil}}
}

func (m *MockBackendService) Current() (domain.BackendName, error) {
	return m.name, m.err
}
