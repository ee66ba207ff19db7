package config

import (
	"os"
	"path/filepath"
)

const AppName = "sigap"

var (
	// AppConfigDir is ~/.config/sigap
	AppConfigDir string

	// AppDataDir is ~/.local/share/sigap
	AppDataDir string

	// AppStateDir is ~/.local/state/sigap
	AppStateDir string

	// AppConfigFile is ~/.config/sigap/config.yaml
	AppConfigFile string

	// AppCredentialsFile is ~/.config/sigap/credentials
	AppCredentialsFile string

	// AppAliasesFile is ~/.config/sigap/aliases.yaml
	AppAliasesFile string

	// AppExportsDir is ~/.local/share/sigap/exports
	AppExportsDir string

	// AppLogFile is ~/.local/state/sigap/sigap.log
	AppLogFile string
)

// InitLocs initializes all application directory paths.
// It respects XDG environment variables if set.
func InitLocs() error {
	home := userHomeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	AppConfigDir = filepath.Join(configHome, AppName)
	AppDataDir = filepath.Join(dataHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)

	AppConfigFile = filepath.Join(AppConfigDir, "config.yaml")
	AppCredentialsFile = filepath.Join(AppConfigDir, "credentials")
	AppAliasesFile = filepath.Join(AppConfigDir, "aliases.yaml")
	AppExportsDir = filepath.Join(AppDataDir, "exports")
	AppLogFile = filepath.Join(AppStateDir, AppName+".log")

	dirs := []string{
		AppConfigDir,
		AppDataDir,
		AppStateDir,
		AppExportsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}

	return nil
}

// InitLogLoc ensures the log directory exists.
func InitLogLoc() error {
	logDir := filepath.Dir(AppLogFile)
	return os.MkdirAll(logDir, 0700)
}

// userHomeDir returns the user's home directory.
func userHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return home
}
