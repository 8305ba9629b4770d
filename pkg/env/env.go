// Package env provides common options shared by commands.
package env

import (
	"flag"
	"os"
)

// Config provides common options to setup a device.
type Config struct {
	// Name identifies the device, used in MQTT topics.
	Name string

	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
}

// DefaultNamePrefix is the prefix of generated device names.
const DefaultNamePrefix = "uart"

var defaultConfig = Config{
	Name: DefaultName(MachineID()),
}

func init() {
	if val := os.Getenv("UART_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("UART_NAME"); val != "" {
		defaultConfig.Name = val
	}
}

// DefaultName generates the device name from a machine ID.
func DefaultName(machineID string) string {
	if len(machineID) > 8 {
		machineID = machineID[:8]
	}
	if machineID == "" {
		return DefaultNamePrefix
	}
	return DefaultNamePrefix + "-" + machineID
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Name, "name", defaultConfig.Name, "Device name")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, e.g. mqtt://localhost:1883/uart/")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}
