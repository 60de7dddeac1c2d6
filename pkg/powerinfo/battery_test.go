package powerinfo

import (
	"errors"
	"testing"

	"github.com/distatus/battery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseState(t *testing.T) {
	tests := map[string]BatteryState{
		"Charging":     Charging,
		"Discharging":  Discharging,
		"Full":         Full,
		"Idle":         NotCharging,
		"Not charging": NotCharging,
		"Unknown":      Unknown,
		"":             Unknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseState(in), "parseState(%q)", in)
	}
}

func TestFromBattery(t *testing.T) {
	got := fromBattery(&battery.Battery{Current: 36000, Full: 45000, ChargeRate: 12000})
	assert.Equal(t, 80, got.Charge)
	assert.Equal(t, 12000.0, got.ChargeRate)

	empty := fromBattery(&battery.Battery{})
	assert.Equal(t, 0, empty.Charge)
}

func TestGet(t *testing.T) {
	orig := getAll
	t.Cleanup(func() { getAll = orig })

	getAll = func() ([]*battery.Battery, error) {
		return []*battery.Battery{{Current: 50, Full: 100}}, errors.New("partial")
	}
	bat, err := Get()
	require.NoError(t, err)
	assert.Equal(t, 50, bat.Charge)

	getAll = func() ([]*battery.Battery, error) { return nil, nil }
	_, err = Get()
	assert.ErrorIs(t, err, ErrNoBattery)

	boom := errors.New("boom")
	getAll = func() ([]*battery.Battery, error) { return nil, boom }
	_, err = Get()
	assert.ErrorIs(t, err, boom)
}
