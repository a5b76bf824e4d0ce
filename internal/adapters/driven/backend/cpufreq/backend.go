// Package cpufreq drives the generic cpufreq subsystem. Limits are
// per-core absolute frequencies in kHz, converted to and from
// percentages of the reference maximum.
package cpufreq

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"sync"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/sysfs"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
	"github.com/custodia-labs/cpufreqctl/internal/core/ports/driven"
	"github.com/custodia-labs/cpufreqctl/internal/logger"
	"github.com/custodia-labs/cpufreqctl/internal/units"
)

// Ensure Backend implements the interface.
var _ driven.Backend = (*Backend)(nil)

// writeAll is replaced in tests to fail partway through a probe.
var writeAll = sysfs.WriteAll

// probeCeiling is the largest frequency the kernel accepts in a
// scaling limit file.
const probeCeiling = math.MaxUint32

const (
	scalingMinFile   = "scaling_min_freq"
	scalingMaxFile   = "scaling_max_freq"
	curFreqFile      = "scaling_cur_freq"
	infoMaxFile      = "cpuinfo_max_freq"
	amdMaxFile       = "amd_pstate_max_freq"
	availableFile    = "scaling_available_frequencies"
	biosLimitFile    = "bios_limit"
	boostFile        = "boost"
	policyDirName    = "cpufreq"
	firstCoreDirName = "cpu0"
)

// Backend controls the per-core cpufreq policies under the CPU sysfs root.
type Backend struct {
	root     string
	override domain.Frequency
	locker   driven.Locker

	refOnce sync.Once
	ref     domain.Frequency
	refErr  error
}

// New creates a cpufreq backend rooted at cfg.SysfsRoot. A non-zero
// cfg.ReferenceMax replaces the detected reference maximum.
func New(cfg domain.Config, locker driven.Locker) *Backend {
	return &Backend{
		root:     cfg.SysfsRoot,
		override: cfg.ReferenceMax,
		locker:   locker,
	}
}

// Name returns cpufreq.
func (b *Backend) Name() domain.BackendName {
	return domain.BackendCPUFreq
}

// Supported reports whether the first core exposes its scaling limits.
func (b *Backend) Supported() bool {
	return sysfs.Exists(b.firstCore(scalingMinFile), b.firstCore(scalingMaxFile))
}

// Turbo reads the global boost switch, where 1 means turbo is on.
func (b *Backend) Turbo(_ context.Context) (domain.TurboState, error) {
	v, err := sysfs.ReadInt(b.boostPath())
	if err != nil {
		return "", err
	}
	return domain.TurboFromBool(v == 1), nil
}

// SetTurbo writes the global boost switch.
func (b *Backend) SetTurbo(_ context.Context, state domain.TurboState) error {
	var v int64
	if state.Enabled() {
		v = 1
	}
	return sysfs.WriteInt(b.boostPath(), v)
}

// Min returns the effective minimum: the highest per-core minimum.
func (b *Backend) Min(ctx context.Context) (domain.Percentage, error) {
	lo, err := b.effectiveMin(ctx)
	if err != nil {
		return 0, err
	}
	return b.toPercentage(lo)
}

// Max returns the effective maximum: the lowest per-core maximum.
func (b *Backend) Max(ctx context.Context) (domain.Percentage, error) {
	hi, err := b.effectiveMax(ctx)
	if err != nil {
		return 0, err
	}
	return b.toPercentage(hi)
}

// SetMin writes the minimum to every core. A value above the effective
// maximum is lowered to it.
func (b *Backend) SetMin(ctx context.Context, pct domain.Percentage) error {
	abs, err := b.toAbsolute(pct)
	if err != nil {
		return err
	}
	hi, err := b.effectiveMax(ctx)
	if err != nil {
		return err
	}
	if abs > hi {
		logger.Debug("cpufreq: min %s clamped to max %s", abs, hi)
		abs = hi
	}
	return b.writeCores(ctx, scalingMinFile, abs)
}

// SetMax writes the maximum to every core. A value below the effective
// minimum is raised to it.
func (b *Backend) SetMax(ctx context.Context, pct domain.Percentage) error {
	abs, err := b.toAbsolute(pct)
	if err != nil {
		return err
	}
	lo, err := b.effectiveMin(ctx)
	if err != nil {
		return err
	}
	if abs < lo {
		logger.Debug("cpufreq: max %s clamped to min %s", abs, lo)
		abs = lo
	}
	return b.writeCores(ctx, scalingMaxFile, abs)
}

// Frequencies reports the discrete frequency table when the driver
// publishes one. Otherwise the continuous range is probed by widening
// every core's limits and reading back what the driver kept.
func (b *Backend) Frequencies(ctx context.Context) (domain.FrequencyMode, error) {
	if sysfs.Exists(b.firstCore(availableFile)) {
		return b.discrete()
	}

	var mode domain.FrequencyMode
	err := b.locker.WithExclusive(ctx, func() error {
		var perr error
		mode, perr = b.probe(ctx)
		return perr
	})
	if err != nil {
		return domain.FrequencyMode{}, err
	}
	return mode, nil
}

// CoreFrequencies reads scaling_cur_freq for every core.
func (b *Backend) CoreFrequencies(ctx context.Context) ([]domain.Frequency, error) {
	values, err := sysfs.ReadCores(ctx, b.root, curFreqFile)
	if err != nil {
		return nil, err
	}
	return toFrequencies(values), nil
}

// Reference returns the reference maximum, resolving it on first use.
func (b *Backend) Reference() (domain.Frequency, error) {
	b.refOnce.Do(func() {
		var origin units.Source
		b.ref, origin, b.refErr = units.ResolveReference(b.referenceSources())
		if b.refErr == nil {
			logger.Debug("cpufreq: reference maximum %s from %s", b.ref, origin)
		}
	})
	return b.ref, b.refErr
}

func (b *Backend) referenceSources() units.ReferenceSources {
	src := units.ReferenceSources{
		Override:    b.override,
		InfoMax:     b.optional(infoMaxFile),
		HardwareMax: b.optional(amdMaxFile),
		BIOSLimit:   b.optional(biosLimitFile),
	}
	if values, err := sysfs.ReadInts(b.firstCore(availableFile)); err == nil {
		src.Available = toFrequencies(values)
	}
	return src
}

// optional reads a first-core file that not every driver provides.
func (b *Backend) optional(file string) domain.Frequency {
	v, err := sysfs.ReadInt(b.firstCore(file))
	if err != nil {
		return 0
	}
	return domain.Frequency(v)
}

func (b *Backend) discrete() (domain.FrequencyMode, error) {
	values, err := sysfs.ReadInts(b.firstCore(availableFile))
	if err != nil {
		return domain.FrequencyMode{}, err
	}
	pcts := make([]domain.Percentage, 0, len(values))
	for _, v := range values {
		p, err := b.toPercentage(domain.Frequency(v))
		if err != nil {
			return domain.FrequencyMode{}, err
		}
		pcts = append(pcts, p)
	}
	return domain.NewDiscreteMode(pcts), nil
}

func (b *Backend) probe(ctx context.Context) (mode domain.FrequencyMode, err error) {
	defer logger.Timed("cpufreq: probe")()

	dirs, err := sysfs.CPUFreqDirs(b.root)
	if err != nil {
		return mode, err
	}
	minPaths := sysfs.Join(dirs, scalingMinFile)
	maxPaths := sysfs.Join(dirs, scalingMaxFile)

	prevMin, err := sysfs.ReadAll(ctx, minPaths)
	if err != nil {
		return mode, err
	}
	prevMax, err := sysfs.ReadAll(ctx, maxPaths)
	if err != nil {
		return mode, err
	}
	logger.Debug("cpufreq: probing range on %d cores", len(dirs))

	defer func() {
		// restoration must not be cut short by a cancelled caller
		rctx := context.WithoutCancel(ctx)
		rerr := errors.Join(
			sysfs.WriteEach(rctx, maxPaths, prevMax),
			sysfs.WriteEach(rctx, minPaths, prevMin),
		)
		if rerr != nil {
			err = errors.Join(err, fmt.Errorf("restore limits: %w", rerr))
			return
		}
		logger.Debug("cpufreq: restored limits on %d cores", len(dirs))
	}()

	if err = writeAll(ctx, minPaths, 0); err != nil {
		return mode, err
	}
	if err = writeAll(ctx, maxPaths, probeCeiling); err != nil {
		return mode, err
	}

	mins, err := sysfs.ReadAll(ctx, minPaths)
	if err != nil {
		return mode, err
	}
	maxs, err := sysfs.ReadAll(ctx, maxPaths)
	if err != nil {
		return mode, err
	}

	lo, err := b.toPercentage(domain.Frequency(slices.Max(mins)))
	if err != nil {
		return mode, err
	}
	hi, err := b.toPercentage(domain.Frequency(slices.Min(maxs)))
	if err != nil {
		return mode, err
	}
	logger.Debug("cpufreq: driver accepts [%d,%d]", lo, hi)
	return domain.NewContinuousMode(lo, hi), nil
}

func (b *Backend) effectiveMin(ctx context.Context) (domain.Frequency, error) {
	values, err := sysfs.ReadCores(ctx, b.root, scalingMinFile)
	if err != nil {
		return 0, err
	}
	return domain.Frequency(slices.Max(values)), nil
}

func (b *Backend) effectiveMax(ctx context.Context) (domain.Frequency, error) {
	values, err := sysfs.ReadCores(ctx, b.root, scalingMaxFile)
	if err != nil {
		return 0, err
	}
	return domain.Frequency(slices.Min(values)), nil
}

func (b *Backend) writeCores(ctx context.Context, file string, abs domain.Frequency) error {
	dirs, err := sysfs.CPUFreqDirs(b.root)
	if err != nil {
		return err
	}
	logger.Debug("cpufreq: writing %s=%d to %d cores", file, abs, len(dirs))
	return writeAll(ctx, sysfs.Join(dirs, file), int64(abs))
}

func (b *Backend) toPercentage(abs domain.Frequency) (domain.Percentage, error) {
	ref, err := b.Reference()
	if err != nil {
		return 0, err
	}
	pct, err := units.ToPercentage(abs, ref)
	if err != nil {
		return 0, err
	}
	return pct.Clamp(), nil
}

func (b *Backend) toAbsolute(pct domain.Percentage) (domain.Frequency, error) {
	ref, err := b.Reference()
	if err != nil {
		return 0, err
	}
	return units.ToAbsolute(pct.Clamp(), ref)
}

func (b *Backend) firstCore(file string) string {
	return filepath.Join(b.root, firstCoreDirName, policyDirName, file)
}

func (b *Backend) boostPath() string {
	return filepath.Join(b.root, policyDirName, boostFile)
}

func toFrequencies(values []int64) []domain.Frequency {
	freqs := make([]domain.Frequency, len(values))
	for i, v := range values {
		freqs[i] = domain.Frequency(v)
	}
	return freqs
}
