package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	defaultConfigName = "config.json"
	defaultAPIPort    = 23010
	defaultLogHistory = 500

	// AppDirName is the folder under the user's config directory that holds
	// everything the launcher writes: config.json, the extracted app, the
	// temp archive, the backup session and the update history database.
	AppDirName = "PlanarAllyPlus"

	// DefaultZipURL is where the packaged app is fetched from unless
	// config.json overrides it with a "zip_url" key.
	// GitHub format: https://github.com/OWNER/REPO/archive/refs/heads/BRANCH.zip
	DefaultZipURL = "https://github.com/mccoy88f/PlanarAllyPlus/archive/refs/heads/dev.zip"
)

type Config struct {
	APIPort        int    `json:"api_port"`
	LogHistorySize int    `json:"log_history_size"`
	ZipURL         string `json:"zip_url,omitempty"`
	DatabasePath   string `json:"database_path"`
}

// DataDir returns the launcher's application-data directory, creating it if
// needed.
func DataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		base, err = os.UserHomeDir()
		if err != nil {
			return "", err
		}
	}
	dir := filepath.Join(base, AppDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// Load reads config.json from dataDir, creating one with defaults on first
// run. A malformed file is an error here; ZipURL is more forgiving because
// the updater must keep working even when the override file is broken.
func Load(dataDir string) (*Config, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dataDir, defaultConfigName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath, dataDir)
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	if cfg.APIPort == 0 {
		cfg.APIPort = defaultAPIPort
	}
	if cfg.LogHistorySize == 0 {
		cfg.LogHistorySize = defaultLogHistory
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = filepath.Join(dataDir, "launcher.db")
	}

	return &cfg, nil
}

func createDefaultConfig(configPath, dataDir string) (*Config, error) {
	cfg := Config{
		APIPort:        defaultAPIPort,
		LogHistorySize: defaultLogHistory,
		DatabasePath:   filepath.Join(dataDir, "launcher.db"),
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ZipURL returns the archive source URL. The config file is re-read on every
// call so an operator can redirect updates without restarting the daemon;
// a missing or malformed file silently falls back to the default.
func ZipURL(dataDir string) string {
	content, err := os.ReadFile(filepath.Join(dataDir, defaultConfigName))
	if err != nil {
		return DefaultZipURL
	}
	var cfg struct {
		ZipURL string `json:"zip_url"`
	}
	if err := json.Unmarshal(content, &cfg); err != nil {
		return DefaultZipURL
	}
	if cfg.ZipURL == "" {
		return DefaultZipURL
	}
	return cfg.ZipURL
}
