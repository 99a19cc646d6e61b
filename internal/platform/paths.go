package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

const envImage = "CONFIGBLOCK_IMAGE"

const defaultName = "default"

// ResolveImagePath returns the host-side image file for a platform name.
func ResolveImagePath(name string) string {
	if image := os.Getenv(envImage); image != "" {
		return image
	}
	if name == "" {
		name = defaultName
	}
	return filepath.Join(DataRoot(), name+".bin")
}

// DataRoot returns the directory holding host-side medium images
func DataRoot() string {
	switch runtime.GOOS {
	case "darwin":
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, "Library", "Application Support", "configblock")
		}
	case "linux":
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			return filepath.Join(xdgData, "configblock")
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".local", "share", "configblock")
		}
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "configblock")
		}
	}

	return filepath.Join(os.TempDir(), "configblock")
}
