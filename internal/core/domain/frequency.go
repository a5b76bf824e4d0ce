package domain

import "fmt"

// Percentage bounds.
const (
	MinPercentage Percentage = 0
	MaxPercentage Percentage = 100
)

// Percentage is a fraction of the reference maximum frequency in [0,100].
type Percentage int

// Clamp returns p limited to [0,100].
func (p Percentage) Clamp() Percentage {
	if p < MinPercentage {
		return MinPercentage
	}
	if p > MaxPercentage {
		return MaxPercentage
	}
	return p
}

// IsValid returns true if p lies in [0,100].
func (p Percentage) IsValid() bool {
	return p >= MinPercentage && p <= MaxPercentage
}

// Frequency is an absolute CPU frequency in kHz.
type Frequency int64

// String formats the frequency in kHz.
func (f Frequency) String() string {
	return fmt.Sprintf("%d kHz", int64(f))
}

// MHz returns the frequency in MHz, truncated.
func (f Frequency) MHz() int64 {
	return int64(f) / 1000
}

// TurboState is the binary turbo-boost state.
type TurboState string

// Turbo states.
const (
	TurboOn  TurboState = "on"
	TurboOff TurboState = "off"
)

// ParseTurboState parses "on" or "off".
func ParseTurboState(s string) (TurboState, error) {
	switch TurboState(s) {
	case TurboOn, TurboOff:
		return TurboState(s), nil
	default:
		return "", &InvalidArgumentError{Value: s, Context: "turbo state (expected on or off)"}
	}
}

// Enabled returns true if turbo boost is on.
func (t TurboState) Enabled() bool {
	return t == TurboOn
}

// TurboFromBool converts an enabled flag into a TurboState.
func TurboFromBool(enabled bool) TurboState {
	if enabled {
		return TurboOn
	}
	return TurboOff
}

// String returns the string representation.
func (t TurboState) String() string {
	return string(t)
}

// FrequencyModeKind distinguishes continuous from discrete ranges.
type FrequencyModeKind string

// Frequency mode kinds.
const (
	ModeContinuous FrequencyModeKind = "continuous"
	ModeDiscrete   FrequencyModeKind = "discrete"
)

// FrequencyMode describes which limits a backend accepts.
// A continuous mode accepts any value in [Min,Max]; a discrete mode
// accepts only the listed values. Construct with NewContinuousMode or
// NewDiscreteMode; the value is never mutated afterwards.
type FrequencyMode struct {
	kind   FrequencyModeKind
	min    Percentage
	max    Percentage
	values []Percentage
}

// NewContinuousMode creates a continuous range. Bounds are clamped and
// swapped if given in the wrong order.
func NewContinuousMode(lo, hi Percentage) FrequencyMode {
	lo, hi = lo.Clamp(), hi.Clamp()
	if lo > hi {
		lo, hi = hi, lo
	}
	return FrequencyMode{kind: ModeContinuous, min: lo, max: hi}
}

// NewDiscreteMode creates a discrete set from values. The result is
// sorted ascending with duplicates removed.
func NewDiscreteMode(values []Percentage) FrequencyMode {
	seen := make(map[Percentage]bool, len(values))
	set := make([]Percentage, 0, len(values))
	for _, v := range values {
		v = v.Clamp()
		if seen[v] {
			continue
		}
		seen[v] = true
		set = append(set, v)
	}
	// insertion sort; lists are a few dozen entries at most
	for i := 1; i < len(set); i++ {
		for j := i; j > 0 && set[j] < set[j-1]; j-- {
			set[j], set[j-1] = set[j-1], set[j]
		}
	}
	return FrequencyMode{kind: ModeDiscrete, values: set}
}

// Kind returns the mode kind.
func (m FrequencyMode) Kind() FrequencyModeKind {
	return m.kind
}

// Min returns the lowest accepted percentage.
func (m FrequencyMode) Min() Percentage {
	if m.kind == ModeDiscrete && len(m.values) > 0 {
		return m.values[0]
	}
	return m.min
}

// Max returns the highest accepted percentage.
func (m FrequencyMode) Max() Percentage {
	if m.kind == ModeDiscrete && len(m.values) > 0 {
		return m.values[len(m.values)-1]
	}
	return m.max
}

// Values returns a copy of the discrete values, nil for continuous modes.
func (m FrequencyMode) Values() []Percentage {
	if m.kind != ModeDiscrete {
		return nil
	}
	out := make([]Percentage, len(m.values))
	copy(out, m.values)
	return out
}

// Allows returns true if p is an accepted value.
func (m FrequencyMode) Allows(p Percentage) bool {
	if m.kind == ModeDiscrete {
		for _, v := range m.values {
			if v == p {
				return true
			}
		}
		return false
	}
	return p >= m.min && p <= m.max
}

// CoreStatistics summarises a snapshot of per-core current frequencies.
// Rnd is one core's value, sampled anew on every computation.
type CoreStatistics struct {
	Min Frequency
	Max Frequency
	Avg Frequency
	Rnd Frequency
}
