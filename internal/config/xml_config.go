// Package config provides XML-based configuration management for
// air-gapped bench deployment.
package config

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// AppConfig represents the root XML configuration structure
type AppConfig struct {
	XMLName xml.Name `xml:"SwitchControl"`

	// Server configuration
	Server ServerConfig `xml:"Server"`

	// Device configuration
	Device DeviceConfig `xml:"Device"`

	// History bounds
	History HistoryConfig `xml:"History"`

	// Advanced options
	Advanced AdvancedConfig `xml:"Advanced"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port              int    `xml:"Port"`
	BindAddress       string `xml:"BindAddress"`
	EnableCORS        bool   `xml:"EnableCORS"`
	AllowOrigins      string `xml:"AllowOrigins"`
	ReadTimeout       int    `xml:"ReadTimeoutSeconds"`
	WriteTimeout      int    `xml:"WriteTimeoutSeconds"`
	IdleTimeout       int    `xml:"IdleTimeoutSeconds"`
	BodyLimit         string `xml:"BodyLimit"`
	EnableCompression bool   `xml:"EnableCompression"`
	CompressionLevel  int    `xml:"CompressionLevel"`
}

// DeviceConfig contains device-family and transport settings
type DeviceConfig struct {
	ProfilesDirectory string `xml:"ProfilesDirectory"`
	ActiveProfile     string `xml:"ActiveProfile"`
	// DemoMode answers commands from the in-process simulator instead
	// of an external carrier.
	DemoMode   bool   `xml:"DemoMode"`
	SerialPort string `xml:"SerialPort"`
	BaudRate   int    `xml:"BaudRate"`
}

// HistoryConfig bounds the in-memory audit logs
type HistoryConfig struct {
	EventCapacity   int `xml:"EventCapacity"`
	ConsoleCapacity int `xml:"ConsoleCapacity"`
}

// AdvancedConfig contains advanced/tuning options
type AdvancedConfig struct {
	LogLevel             string `xml:"LogLevel"`
	EnableRequestLogging bool   `xml:"EnableRequestLogging"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:              8071,
			BindAddress:       "0.0.0.0",
			EnableCORS:        true,
			AllowOrigins:      "*",
			ReadTimeout:       30,
			WriteTimeout:      30,
			IdleTimeout:       120,
			BodyLimit:         "1M",
			EnableCompression: true,
			CompressionLevel:  5,
		},
		Device: DeviceConfig{
			ProfilesDirectory: "./profiles",
			ActiveProfile:     "gen6-144",
			DemoMode:          true,
			SerialPort:        "/dev/ttyUSB0",
			BaudRate:          115200,
		},
		History: HistoryConfig{
			EventCapacity:   50,
			ConsoleCapacity: 100,
		},
		Advanced: AdvancedConfig{
			LogLevel:             "info",
			EnableRequestLogging: true,
		},
	}
}

// LoadConfig loads configuration from XML file
func LoadConfig(configPath string) (*AppConfig, error) {
	// If file doesn't exist, create default
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := DefaultConfig()
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &AppConfig{}
	if err := xml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvironmentOverrides()
	config.resolvePaths(filepath.Dir(configPath))

	return config, nil
}

// Save saves the configuration to XML file
func (c *AppConfig) Save(configPath string) error {
	output, err := xml.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(xml.Header + "\n<!-- Switch Control Service Configuration -->\n<!-- This file is auto-generated on first run -->\n\n")
	content := append(header, output...)

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if dir := os.Getenv("PROFILES_DIR"); dir != "" {
		c.Device.ProfilesDirectory = dir
	}

	if port := os.Getenv("SERIAL_PORT"); port != "" {
		c.Device.SerialPort = port
	}
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Device.ProfilesDirectory) {
		c.Device.ProfilesDirectory = filepath.Join(configDir, c.Device.ProfilesDirectory)
	}
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	if err := os.MkdirAll(c.Device.ProfilesDirectory, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", c.Device.ProfilesDirectory, err)
	}
	return nil
}
