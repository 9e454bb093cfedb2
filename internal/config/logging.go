package config

// LoggingConfig configures category logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error

	// Debug enables debug-level output everywhere regardless of Level.
	Debug bool `yaml:"debug"`

	// Categories toggles individual log categories; unset means
	// enabled.
	Categories map[string]bool `yaml:"categories"`
}

// IsCategoryEnabled reports whether a category should log.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}
