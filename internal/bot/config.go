package bot

// Config represents the configuration for the bot
type Config struct {
	// Maximum number of matches /ara replies with
	SearchLimit int
	// Long polling timeout in seconds
	PollTimeout int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *Config {
	return &Config{
		SearchLimit: 5,
		PollTimeout: 60,
	}
}
