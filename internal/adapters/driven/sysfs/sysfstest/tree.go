// Package sysfstest builds fake CPU sysfs trees for tests.
package sysfstest

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Tree is a fake /sys/devices/system/cpu rooted in a temporary directory.
type Tree struct {
	t    testing.TB
	Root string
}

// New creates an empty tree.
func New(t testing.TB) *Tree {
	t.Helper()
	return &Tree{t: t, Root: t.TempDir()}
}

// Write creates or replaces a file relative to the root.
func (tr *Tree) Write(rel, content string) *Tree {
	tr.t.Helper()
	path := filepath.Join(tr.Root, rel)
	require.NoError(tr.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(tr.t, os.WriteFile(path, []byte(content+"\n"), 0644))
	return tr
}

// WriteInt writes an integer file relative to the root.
func (tr *Tree) WriteInt(rel string, v int64) *Tree {
	return tr.Write(rel, strconv.FormatInt(v, 10))
}

// Read returns the trimmed content of a file relative to the root.
func (tr *Tree) Read(rel string) string {
	tr.t.Helper()
	data, err := os.ReadFile(filepath.Join(tr.Root, rel))
	require.NoError(tr.t, err)
	return strings.TrimSpace(string(data))
}

// ReadInt returns the integer content of a file relative to the root.
func (tr *Tree) ReadInt(rel string) int64 {
	tr.t.Helper()
	v, err := strconv.ParseInt(tr.Read(rel), 10, 64)
	require.NoError(tr.t, err)
	return v
}

// Remove deletes a file relative to the root.
func (tr *Tree) Remove(rel string) *Tree {
	tr.t.Helper()
	require.NoError(tr.t, os.Remove(filepath.Join(tr.Root, rel)))
	return tr
}

// CPUFreq returns the relative path of a per-core cpufreq file.
func CPUFreq(core int, file string) string {
	return filepath.Join(fmt.Sprintf("cpu%d", core), "cpufreq", file)
}

// IntelPState writes an intel_pstate control surface.
func (tr *Tree) IntelPState(noTurbo, minPct, maxPct int64) *Tree {
	return tr.
		WriteInt("intel_pstate/no_turbo", noTurbo).
		WriteInt("intel_pstate/min_perf_pct", minPct).
		WriteInt("intel_pstate/max_perf_pct", maxPct)
}

// Core describes one core's cpufreq files, all in kHz.
type Core struct {
	Cur        int64
	ScalingMin int64
	ScalingMax int64
	InfoMin    int64
	InfoMax    int64
}

// Cores writes per-core cpufreq files for each entry.
func (tr *Tree) Cores(cores ...Core) *Tree {
	for i, c := range cores {
		tr.WriteInt(CPUFreq(i, "scaling_cur_freq"), c.Cur)
		tr.WriteInt(CPUFreq(i, "scaling_min_freq"), c.ScalingMin)
		tr.WriteInt(CPUFreq(i, "scaling_max_freq"), c.ScalingMax)
		if c.InfoMin > 0 {
			tr.WriteInt(CPUFreq(i, "cpuinfo_min_freq"), c.InfoMin)
		}
		if c.InfoMax > 0 {
			tr.WriteInt(CPUFreq(i, "cpuinfo_max_freq"), c.InfoMax)
		}
	}
	return tr
}

// Boost writes the global cpufreq boost switch.
func (tr *Tree) Boost(v int64) *Tree {
	return tr.WriteInt("cpufreq/boost", v)
}
