// Package units converts between percentage limits and absolute
// frequencies, and resolves the reference maximum frequency that both
// conversion directions share.
package units

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/cpufreqctl/internal/core/domain"
)

// ErrNoReference indicates that no source yielded a reference maximum.
var ErrNoReference = errors.New("no reference maximum frequency available")

var hundred = decimal.NewFromInt(100)

// ToPercentage returns round(abs / ref * 100), rounding half away from zero.
// The result is not clamped; abs above ref yields more than 100.
func ToPercentage(abs, ref domain.Frequency) (domain.Percentage, error) {
	if ref <= 0 {
		return 0, fmt.Errorf("convert %d kHz: reference %d: %w", abs, ref, ErrNoReference)
	}
	q := decimal.NewFromInt(int64(abs)).Mul(hundred).Div(decimal.NewFromInt(int64(ref)))
	return domain.Percentage(q.Round(0).IntPart()), nil
}

// ToAbsolute returns round(pct / 100 * ref), rounding half away from zero.
func ToAbsolute(pct domain.Percentage, ref domain.Frequency) (domain.Frequency, error) {
	if ref <= 0 {
		return 0, fmt.Errorf("convert %d%%: reference %d: %w", pct, ref, ErrNoReference)
	}
	q := decimal.NewFromInt(int64(pct)).Mul(decimal.NewFromInt(int64(ref))).Div(hundred)
	return domain.Frequency(q.Round(0).IntPart()), nil
}

// Source names the origin of a resolved reference maximum.
type Source string

// Reference sources in priority order. SourceBIOSLimit overrides any
// other source when it is present and lower.
const (
	SourceOverride    Source = "override"
	SourceInfoMax     Source = "cpuinfo_max_freq"
	SourceHardwareMax Source = "amd_pstate_max_freq"
	SourceAvailable   Source = "scaling_available_frequencies"
	SourceBIOSLimit   Source = "bios_limit"
)

// ReferenceSources holds the candidate values for the reference maximum.
// A zero or negative value means the source is absent.
type ReferenceSources struct {
	// Override is an explicit value from the user or environment.
	Override domain.Frequency

	// InfoMax is the policy's hardware maximum, cpuinfo_max_freq. It is
	// not changed by writing limits, so repeated runs agree on it.
	InfoMax domain.Frequency

	// HardwareMax is the hardware-reported absolute maximum.
	HardwareMax domain.Frequency

	// Available lists the discrete frequencies the policy accepts.
	Available []domain.Frequency

	// BIOSLimit is the platform-imposed ceiling.
	BIOSLimit domain.Frequency
}

// ResolveReference picks the reference maximum: the first present source
// among override, cpuinfo maximum, amd_pstate maximum and highest
// available frequency, replaced by the BIOS limit when that is lower.
func ResolveReference(src ReferenceSources) (domain.Frequency, Source, error) {
	var (
		ref    domain.Frequency
		origin Source
	)

	switch {
	case src.Override > 0:
		ref, origin = src.Override, SourceOverride
	case src.InfoMax > 0:
		ref, origin = src.InfoMax, SourceInfoMax
	case src.HardwareMax > 0:
		ref, origin = src.HardwareMax, SourceHardwareMax
	default:
		for _, f := range src.Available {
			if f > ref {
				ref = f
			}
		}
		if ref > 0 {
			origin = SourceAvailable
		}
	}

	if src.BIOSLimit > 0 && (ref <= 0 || src.BIOSLimit < ref) {
		ref, origin = src.BIOSLimit, SourceBIOSLimit
	}

	if ref <= 0 {
		return 0, "", ErrNoReference
	}
	return ref, origin, nil
}
