package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "ninety"

// DefaultDataDir is the last step of data directory resolution: --dir wins,
// then NINETY_DIR, then this per-OS location:
//
//   - macOS:   ~/Library/Application Support/ninety
//   - Linux:   $XDG_DATA_HOME/ninety (fallback ~/.local/share/ninety)
//   - Windows: %LOCALAPPDATA%\ninety (fallback %APPDATA%\ninety)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, appName)
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, ".local", "share", appName)
	}
}
