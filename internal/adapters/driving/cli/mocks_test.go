package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driving/tui"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
	"github.com/custodia-labs/cpufreqctl/internal/core/services"
)

// MockControlService implements driving.ControlService with in-memory
// state. Err, when set, is returned by every call.
type MockControlService struct {
	mu    sync.Mutex
	turbo domain.TurboState
	min   domain.Percentage
	max   domain.Percentage
	mode  domain.FrequencyMode
	cores []domain.Frequency
	Err   error
	calls []string
}

func newMockControl() *MockControlService {
	return &MockControlService{
		turbo: domain.TurboOn,
		min:   20,
		max:   80,
		mode:  domain.NewContinuousMode(0, 100),
		cores: []domain.Frequency{800000, 1200000, 1600000, 2000000},
	}
}

func (m *MockControlService) record(call string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.Err
}

// Calls returns the methods invoked so far.
func (m *MockControlService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
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
	m.min = min(pct, m.max)
	return nil
}

func (m *MockControlService) Max(_ context.Context) (domain.Percentage, error) {
	return m.max, m.record("Max")
}

func (m *MockControlService) SetMax(_ context.Context, pct domain.Percentage) error {
	if err := m.record("SetMax"); err != nil {
		return err
	}
	m.max = max(pct, m.min)
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
	return m.mode, m.record("Frequencies")
}

func (m *MockControlService) Current(_ context.Context) (domain.CoreStatistics, error) {
	return domain.CoreStatistics{Min: 800000, Max: 2000000, Avg: 1400000, Rnd: 1200000}, m.record("Current")
}

func (m *MockControlService) CoreFrequencies(_ context.Context) ([]domain.Frequency, error) {
	return m.cores, m.record("CoreFrequencies")
}

// MockBackendService implements driving.BackendService.
type MockBackendService struct {
	statuses []driving.BackendStatus
	current  domain.BackendName
	err      error
}

func (m *MockBackendService) List() []driving.BackendStatus { return m.statuses }

func (m *MockBackendService) Current() (domain.BackendName, error) { return m.current, m.err }

// harness wires the command tree to mocks and a memory config store.
type harness struct {
	control  *MockControlService
	backends *MockBackendService
	store    *memory.ConfigStore
	env      map[string]string

	servicesErr error
	configDir   string
	built       *domain.Config
}

func newHarness() *harness {
	return &harness{
		control: newMockControl(),
		backends: &MockBackendService{
			statuses: []driving.BackendStatus{
				{Name: domain.BackendIntelPState, Supported: false},
				{Name: domain.BackendCPUFreq, Supported: true},
			},
			current: domain.BackendCPUFreq,
		},
		store: memory.NewConfigStore(),
		env:   map[string]string{},
	}
}

func (h *harness) wiring() *Wiring {
	return &Wiring{
		Settings: func(configDir string) (driving.SettingsService, error) {
			h.configDir = configDir
			return services.NewSettingsService(h.store).WithEnv(func(k string) string { return h.env[k] }), nil
		},
		Services: func(cfg domain.Config) (*Services, error) {
			h.built = &cfg
			if h.servicesErr != nil {
				return nil, h.servicesErr
			}
			return &Services{
				Control:  h.control,
				Backends: h.backends,
				Utilisation: func(context.Context) ([]float64, error) {
					return []float64{10, 20, 30, 40}, nil
				},
			}, nil
		},
	}
}

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the command tree once with fresh flag values.
func execute(t *testing.T, h *harness, args ...string) result {
	t.Helper()

	flagBackend, flagFormat, flagConfigDir = "", "", ""
	flagMaxFreq, flagVerbose = 0, false
	flagListen, flagMCPListen, flagInterval = "", "", tui.DefaultInterval
	SetWiring(h.wiring())

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		SetWiring(nil)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := Execute(ctx)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
