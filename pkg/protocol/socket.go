package protocol

// Socket defaults shared by batteryd and batteryctl.
const (
	DefaultSocketPath  = "/run/batteryd"
	DefaultSocketGroup = "bctrl"
)
