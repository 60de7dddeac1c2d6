package config

type Config interface {
	// Threshold returns the persisted threshold and whether one is set.
	Threshold() (int, bool)

	SetThreshold(int)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
