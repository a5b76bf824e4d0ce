// Package sysfs reads and writes the kernel's CPU power-management
// control files, fanning multi-core operations out concurrently.
package sysfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Exists reports whether every path exists. It never fails.
func Exists(paths ...string) bool {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

// ReadString reads a control file and trims surrounding whitespace.
func ReadString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadInt reads a control file holding one decimal integer.
func ReadInt(path string) (int64, error) {
	s, err := ReadString(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}

// ReadInts reads a control file holding whitespace-separated integers,
// such as scaling_available_frequencies.
func ReadInts(path string) ([]int64, error) {
	s, err := ReadString(path)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(s)
	values := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		values = append(values, v)
	}
	return values, nil
}

// WriteInt writes a decimal integer to an existing control file.
// The file is never created: a missing control file is an error.
func WriteInt(path string, value int64) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(strconv.FormatInt(value, 10)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadAll reads one integer from each path concurrently. Results keep
// the order of paths. The first failure is returned once every read has
// finished.
func ReadAll(ctx context.Context, paths []string) ([]int64, error) {
	values := make([]int64, len(paths))
	g, _ := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			v, err := ReadInt(p)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}

// WriteAll writes value to every path concurrently and returns only
// after all writes have completed or failed. Any failure is reported;
// there is no partial success.
func WriteAll(ctx context.Context, paths []string, value int64) error {
	g, _ := errgroup.WithContext(ctx)
	for _, p := range paths {
		g.Go(func() error {
			return WriteInt(p, value)
		})
	}
	return g.Wait()
}

// WriteEach writes values[i] to paths[i] concurrently, with the same
// completion guarantee as WriteAll.
func WriteEach(ctx context.Context, paths []string, values []int64) error {
	if len(paths) != len(values) {
		return fmt.Errorf("write %d paths with %d values", len(paths), len(values))
	}
	g, _ := errgroup.WithContext(ctx)
	for i, p := range paths {
		g.Go(func() error {
			return WriteInt(p, values[i])
		})
	}
	return g.Wait()
}

// CPUFreqDirs returns the cpuN/cpufreq directories under root, ordered
// by core number. Cores without a cpufreq directory are skipped.
func CPUFreqDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("list cores in %s: %w", root, err)
	}

	type core struct {
		id   int
		path string
	}
	var cores []core
	for _, e := range entries {
		suffix, ok := strings.CutPrefix(e.Name(), "cpu")
		if !ok {
			continue
		}
		id, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		dir := filepath.Join(root, e.Name(), "cpufreq")
		if !Exists(dir) {
			continue
		}
		cores = append(cores, core{id: id, path: dir})
	}
	if len(cores) == 0 {
		return nil, fmt.Errorf("no cpufreq directories in %s: %w", root, os.ErrNotExist)
	}

	sort.Slice(cores, func(i, j int) bool { return cores[i].id < cores[j].id })
	dirs := make([]string, len(cores))
	for i, c := range cores {
		dirs[i] = c.path
	}
	return dirs, nil
}

// Join appends file to each directory.
func Join(dirs []string, file string) []string {
	paths := make([]string, len(dirs))
	for i, d := range dirs {
		paths[i] = filepath.Join(d, file)
	}
	return paths
}

// ReadCores reads file from every core's cpufreq directory under root,
// ordered by core number.
func ReadCores(ctx context.Context, root, file string) ([]int64, error) {
	dirs, err := CPUFreqDirs(root)
	if err != nil {
		return nil, err
	}
	return ReadAll(ctx, Join(dirs, file))
}
