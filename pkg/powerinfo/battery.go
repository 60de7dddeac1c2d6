// Package powerinfo reads battery charge and state for display. It is read
// only and needs no privilege.
package powerinfo

import (
	"errors"
	"math"
	"strings"

	"github.com/distatus/battery"
)

// ErrNoBattery is returned when the system reports no batteries.
var ErrNoBattery = errors.New("no batteries found")

var getAll = battery.GetAll

// Get returns the first battery. Partial read errors are tolerated as long
// as a battery was found.
func Get() (*Battery, error) {
	batteries, err := getAll()
	if len(batteries) == 0 || batteries[0] == nil {
		if err == nil {
			err = ErrNoBattery
		}
		return nil, err
	}

	return fromBattery(batteries[0]), nil
}

func fromBattery(b *battery.Battery) *Battery {
	bat := &Battery{
		State:      parseState(b.State.String()),
		Current:    b.Current,
		Full:       b.Full,
		ChargeRate: b.ChargeRate,
	}
	if b.Full > 0 {
		bat.Charge = int(math.Round(b.Current / b.Full * 100))
	}
	if bat.State == Discharging {
		bat.ChargeRate = -math.Abs(bat.ChargeRate)
	}
	return bat
}

func parseState(s string) BatteryState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "charging":
		return Charging
	case "discharging":
		return Discharging
	case "full":
		return Full
	case "idle", "not charging":
		return NotCharging
	default:
		return Unknown
	}
}
