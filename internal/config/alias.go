package config

import (
	"os"
	"sync"

	"github.com/sigap/sigap/internal/config/data"
)

// Aliases represents the command alias configuration.
type Aliases struct {
	Alias map[string]string `yaml:"aliases"`
	mx    sync.RWMutex      `yaml:"-"`
}

// DefaultAliases are the built-in command shortcuts for the record types,
// with Indonesian equivalents alongside the English names.
var DefaultAliases = map[string]string{
	// Case records
	"family":   "case/family",
	"keluarga": "case/family",
	"kel":      "case/family",
	"child":    "case/child",
	"anak":     "case/child",
	"guardian": "case/guardian",
	"wali":     "case/guardian",

	// Staff records
	"employee": "staff/employee",
	"pegawai":  "staff/employee",
	"peg":      "staff/employee",
	"spouse":   "staff/spouse",
	"pasangan": "staff/spouse",

	// Program records
	"business":  "program/business",
	"usaha":     "program/business",
	"gallery":   "program/gallery",
	"galeri":    "program/gallery",
	"visit":     "program/visit",
	"kunjungan": "program/visit",
	"document":  "program/document",
	"dokumen":   "program/document",
	"dok":       "program/document",
}

// NewAliases creates an Aliases with default aliases loaded.
func NewAliases() *Aliases {
	a := &Aliases{
		Alias: make(map[string]string, len(DefaultAliases)),
	}
	for k, v := range DefaultAliases {
		a.Alias[k] = v
	}
	return a
}

// Get resolves an alias to its target, returning false when unknown.
func (a *Aliases) Get(alias string) (string, bool) {
	a.mx.RLock()
	defer a.mx.RUnlock()
	target, ok := a.Alias[alias]
	return target, ok
}

// Define adds or overrides an alias.
func (a *Aliases) Define(alias, target string) {
	a.mx.Lock()
	defer a.mx.Unlock()
	a.Alias[alias] = target
}

// Load merges user-defined aliases from the aliases file on top of the
// defaults. A missing file is not an error.
func (a *Aliases) Load(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	var extra Aliases
	if err := data.LoadYAML(path, &extra); err != nil {
		return err
	}

	a.mx.Lock()
	defer a.mx.Unlock()
	for k, v := range extra.Alias {
		a.Alias[k] = v
	}
	return nil
}

// Save writes the alias map to the aliases file.
func (a *Aliases) Save(path string) error {
	a.mx.RLock()
	defer a.mx.RUnlock()
	return data.SaveYAML(path, a)
}
