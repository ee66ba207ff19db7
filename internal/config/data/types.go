// Package data provides configuration data types shared across the config layer.
package data

// Flags represents CLI command-line flags.
type Flags struct {
	RefreshRate *float32 // Refresh rate in seconds
	LogLevel    *string  // Log level (debug, info, warn, error)
	LogFile     *string  // Path to log file
	Command     *string  // Startup command/view
	ReadOnly    *bool    // Run in read-only mode
	Write       *bool    // Enable write operations
	Server      *string  // Server profile to use
	PageSize    *int     // Table rows per page
}

// UI represents user interface configuration settings.
type UI struct {
	EnableMouse bool `yaml:"enableMouse"`
	Crumbsless  bool `yaml:"crumbsless"`
	NoIcons     bool `yaml:"noIcons"`
}

// Logger represents logging configuration settings.
type Logger struct {
	Level   string `yaml:"level"`
	MaxSize int    `yaml:"maxSize"`
}

// NewFlags creates a new Flags instance with all pointer fields initialized.
func NewFlags() *Flags {
	return &Flags{
		RefreshRate: new(float32),
		LogLevel:    new(string),
		LogFile:     new(string),
		Command:     new(string),
		ReadOnly:    new(bool),
		Write:       new(bool),
		Server:      new(string),
		PageSize:    new(int),
	}
}

// IsBoolSet returns true if a bool pointer is non-nil and true.
func IsBoolSet(b *bool) bool {
	return b != nil && *b
}

// IsStringSet returns true if a string pointer is non-nil and non-empty.
func IsStringSet(s *string) bool {
	return s != nil && *s != ""
}
