// Package intelpstate drives the intel_pstate scaling driver, whose
// limits are already expressed as percentages of the maximum
// performance level.
package intelpstate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/sysfs"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driven"
	"github.com/custodia-labs/cpufreqctl/internal/logger"
)

// Ensure Backend implements the interface.
var _ driven.Backend = (*Backend)(nil)

// writeInt is replaced in tests to fail partway through a probe.
var writeInt = sysfs.WriteInt

// MinFloor is the lowest minimum limit this backend writes. The driver
// misbehaves on some platforms with a minimum below it.
const MinFloor domain.Percentage = 10

const (
	noTurboFile = "no_turbo"
	minPctFile  = "min_perf_pct"
	maxPctFile  = "max_perf_pct"
	curFreqFile = "scaling_cur_freq"
)

// Backend controls /sys/devices/system/cpu/intel_pstate.
type Backend struct {
	root   string
	dir    string
	locker driven.Locker
}

// New creates an intel_pstate backend rooted at cfg.SysfsRoot.
func New(cfg domain.Config, locker driven.Locker) *Backend {
	return &Backend{
		root:   cfg.SysfsRoot,
		dir:    filepath.Join(cfg.SysfsRoot, "intel_pstate"),
		locker: locker,
	}
}

// Name returns intel_pstate.
func (b *Backend) Name() domain.BackendName {
	return domain.BackendIntelPState
}

// Supported reports whether every intel_pstate control file exists.
func (b *Backend) Supported() bool {
	return sysfs.Exists(b.path(noTurboFile), b.path(minPctFile), b.path(maxPctFile))
}

// Turbo reads no_turbo, where 0 means turbo is on.
func (b *Backend) Turbo(_ context.Context) (domain.TurboState, error) {
	v, err := sysfs.ReadInt(b.path(noTurboFile))
	if err != nil {
		return "", err
	}
	return domain.TurboFromBool(v == 0), nil
}

// SetTurbo writes the inverted state to no_turbo.
func (b *Backend) SetTurbo(_ context.Context, state domain.TurboState) error {
	var v int64 = 1
	if state.Enabled() {
		v = 0
	}
	return sysfs.WriteInt(b.path(noTurboFile), v)
}

// Min reads min_perf_pct.
func (b *Backend) Min(_ context.Context) (domain.Percentage, error) {
	return b.read(minPctFile)
}

// Max reads max_perf_pct.
func (b *Backend) Max(_ context.Context) (domain.Percentage, error) {
	return b.read(maxPctFile)
}

// SetMin writes min_perf_pct. Values below MinFloor are raised to it,
// and values above the current maximum are lowered to the maximum.
func (b *Backend) SetMin(_ context.Context, pct domain.Percentage) error {
	if pct < MinFloor {
		logger.Debug("intel_pstate: min %d raised to floor %d", pct, MinFloor)
		pct = MinFloor
	}
	hi, err := b.read(maxPctFile)
	if err != nil {
		return err
	}
	if pct > hi {
		logger.Debug("intel_pstate: min %d clamped to max %d", pct, hi)
		pct = hi
	}
	return b.write(minPctFile, pct)
}

// SetMax writes max_perf_pct. Values below the current minimum are
// raised to the minimum.
func (b *Backend) SetMax(_ context.Context, pct domain.Percentage) error {
	lo, err := b.read(minPctFile)
	if err != nil {
		return err
	}
	if pct < lo {
		logger.Debug("intel_pstate: max %d clamped to min %d", pct, lo)
		pct = lo
	}
	return b.write(maxPctFile, pct)
}

// Frequencies probes the accepted range by widening the limits to
// [0,100] and reading back what the driver kept. The previous limits
// are restored before the exclusive lock is released.
func (b *Backend) Frequencies(ctx context.Context) (domain.FrequencyMode, error) {
	var mode domain.FrequencyMode
	err := b.locker.WithExclusive(ctx, func() error {
		var perr error
		mode, perr = b.probe()
		return perr
	})
	if err != nil {
		return domain.FrequencyMode{}, err
	}
	return mode, nil
}

func (b *Backend) probe() (mode domain.FrequencyMode, err error) {
	defer logger.Timed("intel_pstate: probe")()

	prevMin, err := b.read(minPctFile)
	if err != nil {
		return mode, err
	}
	prevMax, err := b.read(maxPctFile)
	if err != nil {
		return mode, err
	}
	logger.Debug("intel_pstate: probing range, saved min=%d max=%d", prevMin, prevMax)

	defer func() {
		// max first: the probe left min at its lowest, so any saved max fits
		rerr := errors.Join(
			b.write(maxPctFile, prevMax),
			b.write(minPctFile, prevMin),
		)
		if rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore limits: %w", rerr))
			return
		}
		logger.Debug("intel_pstate: restored min=%d max=%d", prevMin, prevMax)
	}()

	if err = b.write(minPctFile, domain.MinPercentage); err != nil {
		return mode, err
	}
	if err = b.write(maxPctFile, domain.MaxPercentage); err != nil {
		return mode, err
	}

	lo, err := b.read(minPctFile)
	if err != nil {
		return mode, err
	}
	hi, err := b.read(maxPctFile)
	if err != nil {
		return mode, err
	}
	logger.Debug("intel_pstate: driver accepts [%d,%d]", lo, hi)
	return domain.NewContinuousMode(lo, hi), nil
}

// CoreFrequencies reads scaling_cur_freq for every core.
func (b *Backend) CoreFrequencies(ctx context.Context) ([]domain.Frequency, error) {
	values, err := sysfs.ReadCores(ctx, b.root, curFreqFile)
	if err != nil {
		return nil, err
	}
	freqs := make([]domain.Frequency, len(values))
	for i, v := range values {
		freqs[i] = domain.Frequency(v)
	}
	return freqs, nil
}

func (b *Backend) path(file string) string {
	return filepath.Join(b.dir, file)
}

func (b *Backend) read(file string) (domain.Percentage, error) {
	v, err := sysfs.ReadInt(b.path(file))
	if err != nil {
		return 0, err
	}
	return domain.Percentage(v), nil
}

func (b *Backend) write(file string, pct domain.Percentage) error {
	return writeInt(b.path(file), int64(pct))
}
