package data

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// invalidPathCharsRX matches characters not allowed in file paths.
var invalidPathCharsRX = regexp.MustCompile(`[:/]+`)

// SanitizeFileName replaces invalid characters in a filename.
func SanitizeFileName(name string) string {
	return invalidPathCharsRX.ReplaceAllString(name, "-")
}

// EnsureDirPath creates a directory path if it doesn't exist.
func EnsureDirPath(path string, perm os.FileMode) (string, error) {
	if err := os.MkdirAll(path, perm); err != nil {
		return "", fmt.Errorf("failed to create directory %q: %w", path, err)
	}
	return path, nil
}

// EnsureFullPath ensures the parent directories of a file path exist.
func EnsureFullPath(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("failed to create full path for %q: %w", path, err)
	}
	return nil
}

// SaveYAML saves a struct to a YAML file.
func SaveYAML(path string, data interface{}) error {
	if err := EnsureFullPath(path, 0700); err != nil {
		return err
	}

	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}
	return os.WriteFile(path, out, 0600)
}

// LoadYAML loads a YAML file into the given struct.
func LoadYAML(path string, data interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("failed to parse yaml %q: %w", path, err)
	}
	return nil
}
