package config

import (
	"github.com/sigap/sigap/internal/config/data"
)

// DefaultRefreshRate is the default data refresh interval in seconds.
const DefaultRefreshRate = 5.0

// DefaultLogLevel is the default logging level.
const DefaultLogLevel = "info"

// NewFlags creates a new Flags instance with default values set.
func NewFlags() *data.Flags {
	refreshRate := float32(DefaultRefreshRate)
	logLevel := DefaultLogLevel
	logFile := AppLogFile
	command := ""
	readOnly := false
	write := false
	server := ""
	pageSize := 0

	return &data.Flags{
		RefreshRate: &refreshRate,
		LogLevel:    &logLevel,
		LogFile:     &logFile,
		Command:     &command,
		ReadOnly:    &readOnly,
		Write:       &write,
		Server:      &server,
		PageSize:    &pageSize,
	}
}
