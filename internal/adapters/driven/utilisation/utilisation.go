// Package utilisation reports per-CPU busy percentages.
package utilisation

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
)

// percent is swapped in tests.
var percent = cpu.PercentWithContext

// PerCPU returns the busy percentage of every logical CPU since the
// previous call. The first call measures since boot.
func PerCPU(ctx context.Context) ([]float64, error) {
	values, err := percent(ctx, 0, true)
	if err != nil {
		return nil, fmt.Errorf("reading cpu utilisation: %w", err)
	}
	return values, nil
}
