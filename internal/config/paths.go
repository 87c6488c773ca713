package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	AppName        = "IconSet"
	ConfigFileName = "config.toml"
	HostLogName    = "iconset_host.log"
)

// Config lookup:
//   - Windows: %APPDATA%\IconSet\config.toml
//   - macOS:   ~/Library/Application Support/IconSet/config.toml
//   - Linux:   $XDG_CONFIG_HOME/iconset/config.toml (~/.config fallback)

func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, AppName), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", AppName), nil
	case "linux":
		config := os.Getenv("XDG_CONFIG_HOME")
		if config == "" {
			config = filepath.Join(home, ".config")
		}
		return filepath.Join(config, "iconset"), nil
	default:
		return filepath.Join(home, ".iconset"), nil
	}
}

// DefaultPath returns where LoadDefault looks for a config file.
func DefaultPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// GetHostLogFile lives in the temp dir so the stdio host can log before
// anything else about the environment is known.
func GetHostLogFile() string {
	return filepath.Join(os.TempDir(), HostLogName)
}
