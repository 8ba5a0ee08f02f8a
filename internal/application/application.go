package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "supergraph"

	// EnvPrefix is the prefix for every environment variable read by supergraph
	EnvPrefix = "SUPERGRAPH"
)

// Version is set at build time with -ldflags "-X ...application.Version=..."
var Version = "0.1.0-dev"

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the supergraph configuration directory path.
// Linux: ~/.config/supergraph (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\supergraph (via os.UserCacheDir)
//
// SUPERGRAPH_HOME overrides the platform default.
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

func lazyLoad() {
	if home := os.Getenv(EnvPrefix + "_HOME"); home != "" {
		appDir = home

		return
	}

	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)

		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
