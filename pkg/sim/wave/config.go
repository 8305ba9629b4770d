package wave

import "flag"

// Config represents configuration for the recorder.
type Config struct {
	// Depth is the max number of transitions kept.
	Depth int
	// Scale is the number of cycles per rendered column.
	Scale int
}

var defaultConfig = Config{
	Depth: 4096,
	Scale: 1,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.IntVar(&defaultConfig.Depth, "wave-depth", defaultConfig.Depth, "Number of line transitions kept for waveform")
	flag.IntVar(&defaultConfig.Scale, "wave-scale", defaultConfig.Scale, "Cycles per column when rendering waveform")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a default config.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewRecorder creates a recorder from config.
func (c *Config) NewRecorder() *Recorder {
	r := NewRecorder(c.Depth)
	if c.Scale > 0 {
		r.Scale = c.Scale
	}
	return r
}
