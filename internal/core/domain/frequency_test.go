package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage_Clamp(t *testing.T) {
	tests := []struct {
		in, want Percentage
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{250, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Clamp())
	}
}

func TestPercentage_IsValid(t *testing.T) {
	assert.True(t, Percentage(0).IsValid())
	assert.True(t, Percentage(100).IsValid())
	assert.False(t, Percentage(101).IsValid())
	assert.False(t, Percentage(-1).IsValid())
}

func TestParseTurboState(t *testing.T) {
	on, err := ParseTurboState("on")
	require.NoError(t, err)
	assert.Equal(t, TurboOn, on)
	assert.True(t, on.Enabled())

	off, err := ParseTurboState("off")
	require.NoError(t, err)
	assert.False(t, off.Enabled())

	_, err = ParseTurboState("maybe")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestTurboFromBool(t *testing.T) {
	assert.Equal(t, TurboOn, TurboFromBool(true))
	assert.Equal(t, TurboOff, TurboFromBool(false))
}

func TestFrequency_MHz(t *testing.T) {
	assert.Equal(t, int64(3600), Frequency(3600000).MHz())
	assert.Equal(t, "800000 kHz", Frequency(800000).String())
}

func TestNewContinuousMode(t *testing.T) {
	m := NewContinuousMode(90, 12)

	assert.Equal(t, ModeContinuous, m.Kind())
	assert.Equal(t, Percentage(12), m.Min())
	assert.Equal(t, Percentage(90), m.Max())
	assert.Nil(t, m.Values())
	assert.True(t, m.Allows(50))
	assert.False(t, m.Allows(95))
}

func TestNewDiscreteMode_SortsAndDeduplicates(t *testing.T) {
	m := NewDiscreteMode([]Percentage{100, 33, 67, 33, 150})

	assert.Equal(t, ModeDiscrete, m.Kind())
	assert.Equal(t, []Percentage{33, 67, 100}, m.Values())
	assert.Equal(t, Percentage(33), m.Min())
	assert.Equal(t, Percentage(100), m.Max())
	assert.True(t, m.Allows(67))
	assert.False(t, m.Allows(50))
}

func TestFrequencyMode_ValuesIsACopy(t *testing.T) {
	m := NewDiscreteMode([]Percentage{50, 100})
	v := m.Values()
	v[0] = 1

	assert.Equal(t, []Percentage{50, 100}, m.Values())
}
