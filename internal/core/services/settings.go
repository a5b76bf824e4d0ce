package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driven"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driving"
	"github.com/custodia-labs/cpufreqctl/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyBackend      = "backend"
	KeyFormat       = "format"
	KeyReferenceMax = "reference.max_freq"
	KeySysfsRoot    = "paths.sysfs_root"
	KeyLockFile     = "paths.lock_file"
)

// Environment variables, consulted after the config file.
const (
	EnvBackend      = "CPUFREQCTL_BACKEND"
	EnvFormat       = "CPUFREQCTL_FORMAT"
	EnvReferenceMax = "CPUFREQCTL_MAX_FREQ"
)

// SettingsService builds the per-invocation configuration.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service reading the process
// environment.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// WithEnv replaces the environment lookup. Used by tests.
func (s *SettingsService) WithEnv(getenv func(string) string) *SettingsService {
	s.getenv = getenv
	return s
}

// Resolve applies defaults < config file < environment < overrides.
func (s *SettingsService) Resolve(overrides driving.Overrides) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if s.configStore != nil {
		if v := s.configStore.GetString(KeyBackend); v != "" {
			cfg.Backend = domain.BackendName(v)
		}
		if v := s.configStore.GetString(KeyFormat); v != "" {
			cfg.Format = domain.OutputFormat(v)
		}
		if v := s.configStore.GetInt64(KeyReferenceMax); v != 0 {
			cfg.ReferenceMax = domain.Frequency(v)
		}
		if v := s.configStore.GetString(KeySysfsRoot); v != "" {
			cfg.SysfsRoot = v
		}
		if v := s.configStore.GetString(KeyLockFile); v != "" {
			cfg.LockFile = v
		}
	}

	if v := s.getenv(EnvBackend); v != "" {
		cfg.Backend = domain.BackendName(v)
	}
	if v := s.getenv(EnvFormat); v != "" {
		cfg.Format = domain.OutputFormat(v)
	}
	if v := s.getenv(EnvReferenceMax); v != "" {
		freq, err := parseFrequency(v, EnvReferenceMax)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.ReferenceMax = freq
	}

	if overrides.Backend != "" {
		cfg.Backend = domain.BackendName(overrides.Backend)
	}
	if overrides.Format != "" {
		cfg.Format = domain.OutputFormat(overrides.Format)
	}
	if overrides.ReferenceMax != 0 {
		cfg.ReferenceMax = domain.Frequency(overrides.ReferenceMax)
	}
	cfg.Verbose = overrides.Verbose

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	logger.Debug("config: backend=%s format=%s reference=%d sysfs=%s lock=%s",
		cfg.Backend, cfg.Format, cfg.ReferenceMax, cfg.SysfsRoot, cfg.LockFile)
	return cfg, nil
}

// Set validates and stores one key.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.Internal("settings", fmt.Errorf("config store not configured"))
	}

	var stored any
	switch key {
	case KeyBackend:
		if !domain.BackendName(value).IsValidChoice() {
			return &domain.InvalidBackendError{Name: value}
		}
		stored = value
	case KeyFormat:
		if !domain.OutputFormat(value).IsValid() {
			return &domain.InvalidArgumentError{Value: value, Context: key}
		}
		stored = value
	case KeyReferenceMax:
		freq, err := parseFrequency(value, key)
		if err != nil {
			return err
		}
		stored = int64(freq)
	case KeySysfsRoot, KeyLockFile:
		if strings.TrimSpace(value) == "" {
			return &domain.InvalidArgumentError{Value: value, Context: key}
		}
		stored = value
	default:
		return &domain.InvalidArgumentError{Value: key, Context: "config key"}
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return domain.Internal("settings", fmt.Errorf("save %s: %w", key, err))
	}
	return nil
}

// Values returns every stored key with its value.
func (s *SettingsService) Values() map[string]any {
	values := make(map[string]any)
	if s.configStore == nil {
		return values
	}
	for _, key := range s.configStore.Keys() {
		if v, ok := s.configStore.Get(key); ok {
			values[key] = v
		}
	}
	return values
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

// SupportedKeys lists the keys accepted by Set.
func SupportedKeys() []string {
	return []string{KeyBackend, KeyFormat, KeyReferenceMax, KeySysfsRoot, KeyLockFile}
}

func parseFrequency(value, context string) (domain.Frequency, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, &domain.InvalidArgumentError{Value: value, Context: context}
	}
	if n < 0 {
		return 0, &domain.OutOfRangeError{Value: n, Min: 0, Max: int64(^uint32(0))}
	}
	return domain.Frequency(n), nil
}
