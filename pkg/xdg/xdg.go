// pkg/xdg/xdg.go

package xdg

import (
	"os"
	"path/filepath"
)

// App is the directory name used under every XDG base directory.
const App = "secret"

func GetEnvOrDefault(envVar, fallback string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return fallback
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.TempDir()
}

// ConfigDir is $XDG_CONFIG_HOME/secret, defaulting to ~/.config/secret.
func ConfigDir() string {
	base := GetEnvOrDefault("XDG_CONFIG_HOME", filepath.Join(home(), ".config"))
	return filepath.Join(base, App)
}

// StatePath is a file under $XDG_STATE_HOME/secret, defaulting to
// ~/.local/state/secret.
func StatePath(file string) string {
	base := GetEnvOrDefault("XDG_STATE_HOME", filepath.Join(home(), ".local", "state"))
	return filepath.Join(base, App, file)
}
