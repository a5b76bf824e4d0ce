package intelpstate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/lock/locktest"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/sysfs"
	"github.com/custodia-labs/cpufreqctl/internal/adapters/driven/sysfs/sysfstest"
	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

func newTestBackend(t *testing.T, noTurbo, minPct, maxPct int64) (*Backend, *sysfstest.Tree, *locktest.Locker) {
	t.Helper()
	tree := sysfstest.New(t).IntelPState(noTurbo, minPct, maxPct)
	cfg := domain.DefaultConfig()
	cfg.SysfsRoot = tree.Root
	locker := &locktest.Locker{}
	return New(cfg, locker), tree, locker
}

func TestBackend_Name(t *testing.T) {
	b, _, _ := newTestBackend(t, 0, 20, 100)
	assert.Equal(t, domain.BackendIntelPState, b.Name())
}

func TestBackend_Supported(t *testing.T) {
	b, tree, _ := newTestBackend(t, 0, 20, 100)
	assert.True(t, b.Supported())

	tree.Remove("intel_pstate/max_perf_pct")
	assert.False(t, b.Supported())
}

func TestBackend_Supported_EmptyTree(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.SysfsRoot = sysfstest.New(t).Root
	assert.False(t, New(cfg, &locktest.Locker{}).Supported())
}

func TestBackend_Turbo_Inverted(t *testing.T) {
	ctx := context.Background()
	b, tree, _ := newTestBackend(t, 0, 20, 100)

	state, err := b.Turbo(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TurboOn, state)

	require.NoError(t, b.SetTurbo(ctx, domain.TurboOff))
	assert.Equal(t, int64(1), tree.ReadInt("intel_pstate/no_turbo"))

	state, err = b.Turbo(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.TurboOff, state)

	require.NoError(t, b.SetTurbo(ctx, domain.TurboOn))
	assert.Equal(t, int64(0), tree.ReadInt("intel_pstate/no_turbo"))
}

func TestBackend_Limits_PassThrough(t *testing.T) {
	ctx := context.Background()
	b, _, _ := newTestBackend(t, 0, 23, 87)

	lo, err := b.Min(ctx)
	require.NoError(t, err)
	hi, err := b.Max(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.Percentage(23), lo)
	assert.Equal(t, domain.Percentage(87), hi)
}

func TestBackend_SetMin(t *testing.T) {
	tests := []struct {
		name string
		max  int64
		set  domain.Percentage
		want int64
	}{
		{name: "within range", max: 100, set: 40, want: 40},
		{name: "below floor", max: 100, set: 3, want: 10},
		{name: "zero", max: 100, set: 0, want: 10},
		{name: "above max", max: 60, set: 80, want: 60},
		{name: "equal to max", max: 60, set: 60, want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, tree, _ := newTestBackend(t, 0, 20, tt.max)

			require.NoError(t, b.SetMin(context.Background(), tt.set))
			assert.Equal(t, tt.want, tree.ReadInt("intel_pstate/min_perf_pct"))
		})
	}
}

func TestBackend_SetMax(t *testing.T) {
	tests := []struct {
		name string
		min  int64
		set  domain.Percentage
		want int64
	}{
		{name: "within range", min: 20, set: 70, want: 70},
		{name: "below min", min: 50, set: 30, want: 50},
		{name: "full", min: 20, set: 100, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, tree, _ := newTestBackend(t, 0, tt.min, 100)

			require.NoError(t, b.SetMax(context.Background(), tt.set))
			assert.Equal(t, tt.want, tree.ReadInt("intel_pstate/max_perf_pct"))
		})
	}
}

func TestBackend_MissingControlFile(t *testing.T) {
	ctx := context.Background()
	b, tree, _ := newTestBackend(t, 0, 20, 100)
	tree.Remove("intel_pstate/min_perf_pct")

	_, err := b.Min(ctx)
	assert.Error(t, err)
	assert.Error(t, b.SetMax(ctx, 50))
}

func TestBackend_Frequencies_WidensAndRestores(t *testing.T) {
	b, tree, locker := newTestBackend(t, 0, 35, 80)

	mode, err := b.Frequencies(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.ModeContinuous, mode.Kind())
	assert.Equal(t, domain.Percentage(0), mode.Min())
	assert.Equal(t, domain.Percentage(100), mode.Max())
	assert.Equal(t, []locktest.Mode{locktest.Exclusive}, locker.Calls())

	assert.Equal(t, int64(35), tree.ReadInt("intel_pstate/min_perf_pct"))
	assert.Equal(t, int64(80), tree.ReadInt("intel_pstate/max_perf_pct"))
}

func TestBackend_Frequencies_LockFailure(t *testing.T) {
	b, tree, locker := newTestBackend(t, 0, 35, 80)
	want := errors.New("lock unavailable")
	locker.Fail(want)

	_, err := b.Frequencies(context.Background())

	assert.ErrorIs(t, err, want)
	assert.Equal(t, int64(35), tree.ReadInt("intel_pstate/min_perf_pct"))
}

func TestBackend_Frequencies_MissingFile(t *testing.T) {
	b, tree, _ := newTestBackend(t, 0, 35, 80)
	tree.Remove("intel_pstate/max_perf_pct")

	_, err := b.Frequencies(context.Background())
	assert.Error(t, err)
	assert.Equal(t, int64(35), tree.ReadInt("intel_pstate/min_perf_pct"))
}

func TestBackend_Frequencies_RestoresAfterFailedWrite(t *testing.T) {
	errWrite := errors.New("device busy")

	tests := []struct {
		name   string
		failOn string
	}{
		{name: "widening max fails", failOn: "max_perf_pct"},
		{name: "widening min fails", failOn: "min_perf_pct"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, tree, _ := newTestBackend(t, 0, 35, 80)

			failed := false
			writeInt = func(path string, value int64) error {
				if err := sysfs.WriteInt(path, value); err != nil {
					return err
				}
				if !failed && filepath.Base(path) == tt.failOn {
					failed = true
					return errWrite
				}
				return nil
			}
			t.Cleanup(func() { writeInt = sysfs.WriteInt })

			_, err := b.Frequencies(context.Background())

			assert.ErrorIs(t, err, errWrite)
			assert.NotContains(t, err.Error(), "restore limits")
			assert.Equal(t, int64(35), tree.ReadInt("intel_pstate/min_perf_pct"))
			assert.Equal(t, int64(80), tree.ReadInt("intel_pstate/max_perf_pct"))
		})
	}
}

func TestBackend_Frequencies_ReportsFailedRestore(t *testing.T) {
	b, _, _ := newTestBackend(t, 0, 35, 80)
	errWrite := errors.New("device busy")

	writeInt = func(path string, value int64) error {
		if filepath.Base(path) == "max_perf_pct" && value == 80 {
			return errWrite
		}
		return sysfs.WriteInt(path, value)
	}
	t.Cleanup(func() { writeInt = sysfs.WriteInt })

	_, err := b.Frequencies(context.Background())

	assert.ErrorIs(t, err, errWrite)
	assert.Contains(t, err.Error(), "restore limits")
}

func TestBackend_CoreFrequencies(t *testing.T) {
	b, tree, _ := newTestBackend(t, 0, 20, 100)
	tree.Cores(
		sysfstest.Core{Cur: 800000, ScalingMin: 400000, ScalingMax: 4000000},
		sysfstest.Core{Cur: 1200000, ScalingMin: 400000, ScalingMax: 4000000},
	)

	freqs, err := b.CoreFrequencies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Frequency{800000, 1200000}, freqs)
}

func TestBackend_CoreFrequencies_NoCores(t *testing.T) {
	b, _, _ := newTestBackend(t, 0, 20, 100)

	_, err := b.CoreFrequencies(context.Background())
	assert.Error(t, err)
}
