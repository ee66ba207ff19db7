package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/sigap/sigap/internal/config/data"
)

// Default values
const (
	DefaultAPITimeout = 30 * time.Second
	DefaultView       = "family"
	DefaultPageSize   = 25
)

// Sigap represents the sigap global configuration.
type Sigap struct {
	RefreshRate   float32     `yaml:"refreshRate"`
	APITimeout    string      `yaml:"apiTimeout"`
	ReadOnly      bool        `yaml:"readOnly"`
	DefaultView   string      `yaml:"defaultView"`
	DefaultServer string      `yaml:"defaultServer"`
	PageSize      int         `yaml:"pageSize"`
	UI            data.UI     `yaml:"ui"`
	Logger        data.Logger `yaml:"logger"`

	activeServer string
	mx           sync.RWMutex
}

// NewSigap creates a Sigap with default settings.
func NewSigap() *Sigap {
	return &Sigap{
		RefreshRate: DefaultRefreshRate,
		APITimeout:  DefaultAPITimeout.String(),
		ReadOnly:    false,
		DefaultView: DefaultView,
		PageSize:    DefaultPageSize,
	}
}

// Validate ensures Sigap has valid settings.
func (s *Sigap) Validate() {
	s.mx.Lock()
	defer s.mx.Unlock()

	if s.RefreshRate <= 0 {
		s.RefreshRate = DefaultRefreshRate
	}

	if s.APITimeout == "" {
		s.APITimeout = DefaultAPITimeout.String()
	}

	if s.DefaultView == "" {
		s.DefaultView = DefaultView
	}

	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
}

// ActiveServer returns the currently active server profile.
func (s *Sigap) ActiveServer() string {
	s.mx.RLock()
	defer s.mx.RUnlock()
	if s.activeServer != "" {
		return s.activeServer
	}
	return s.DefaultServer
}

// ActivateServer selects a server profile for this run.
func (s *Sigap) ActivateServer(server string) {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.activeServer = server
}

// Override applies CLI flag overrides to the configuration.
func (s *Sigap) Override(flags *data.Flags) {
	if flags == nil {
		return
	}

	s.mx.Lock()
	defer s.mx.Unlock()

	if flags.RefreshRate != nil && *flags.RefreshRate > 0 {
		s.RefreshRate = *flags.RefreshRate
	}

	if flags.ReadOnly != nil {
		s.ReadOnly = *flags.ReadOnly
	}

	// Write flag overrides ReadOnly
	if data.IsBoolSet(flags.Write) {
		s.ReadOnly = false
	}

	if data.IsStringSet(flags.Server) {
		s.activeServer = *flags.Server
	}

	if data.IsStringSet(flags.Command) {
		s.DefaultView = *flags.Command
	}

	if flags.PageSize != nil && *flags.PageSize > 0 {
		s.PageSize = *flags.PageSize
	}
}

// GetAPITimeout returns the parsed API timeout duration.
func (s *Sigap) GetAPITimeout() (time.Duration, error) {
	s.mx.RLock()
	timeoutStr := s.APITimeout
	s.mx.RUnlock()

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return 0, fmt.Errorf("invalid API timeout %q: %w", timeoutStr, err)
	}

	return timeout, nil
}

// GetRefreshRate returns the refresh interval as a duration.
func (s *Sigap) GetRefreshRate() time.Duration {
	s.mx.RLock()
	defer s.mx.RUnlock()
	return time.Duration(s.RefreshRate * float32(time.Second))
}
