package metrics

import (
	"context"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
)

// MockControlService implements driving.ControlService for collector tests.
type MockControlService struct {
	TurboState domain.TurboState
	MinLimit   domain.Percentage
	MaxLimit   domain.Percentage
	Cores      []domain.Frequency
	TurboErr   error
	CoresErr   error
}

func (m *MockControlService) Turbo(_ context.Context) (domain.TurboState, error) {
	return m.TurboState, m.TurboErr
}

func (m *MockControlService) SetTurbo(_ context.Context, _ domain.TurboState) error { return nil }

func (m *MockControlService) Min(_ context.Context) (domain.Percentage, error) {
	return m.MinLimit, nil
}

func (m *MockControlService) SetMin(_ context.Context, _ domain.Percentage) error { return nil }

func (m *MockControlService) Max(_ context.Context) (domain.Percentage, error) {
	return m.MaxLimit, nil
}

func (m *MockControlService) SetMax(_ context.Context, _ domain.Percentage) error { return nil }

func (m *MockControlService) Reset(_ context.Context) error { return nil }

func (m *MockControlService) Frequencies(_ context.Context) (domain.FrequencyMode, error) {
	return domain.NewContinuousMode(0, 100), nil
}

func (m *MockControlService) Current(_ context.Context) (domain.CoreStatistics, error) {
	return domain.CoreStatistics{}, nil
}

func (m *MockControlService) CoreFrequencies(_ context.Context) ([]domain.Frequency, error) {
	return m.Cores, m.CoresErr
}

// MockBackendService implements driving.BackendService for collector tests.
type MockBackendService struct {
	Statuses []driving.BackendStatus
	Active   domain.BackendName
	Err      error
}

func (m *MockBackendService) List() []driving.BackendStatus { return m.Statuses }

func (m *MockBackendService) Current() (domain.BackendName, error) { return m.Active, m.Err }
