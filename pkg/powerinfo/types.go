package powerinfo

// BatteryState represents the charging state of the battery.
type BatteryState int

const (
	// Unknown is reported when the kernel gives no usable state.
	Unknown BatteryState = iota
	// Discharging indicates the battery is discharging.
	Discharging
	// Charging indicates the battery is charging.
	Charging
	// Full indicates the battery is full.
	Full
	// NotCharging indicates the battery is idle, e.g. held at the charge threshold.
	NotCharging
)

func (s BatteryState) String() string {
	switch s {
	case Discharging:
		return "discharging"
	case Charging:
		return "charging"
	case Full:
		return "full"
	case NotCharging:
		return "not charging"
	default:
		return "unknown"
	}
}

// Battery is a minimal battery snapshot for batteryctl -g.
// Units:
// - Current, Full: mWh
// - ChargeRate: mW (negative when discharging)
type Battery struct {
	State      BatteryState
	Charge     int
	Current    float64
	Full       float64
	ChargeRate float64
}
