package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ToAge converts time to human-readable duration
func ToAge(t *time.Time) string {
	if t == nil || t.IsZero() {
		return UnknownValue
	}
	return HumanDuration(time.Since(*t))
}

// HumanDuration converts duration to human readable format (e.g., "5d", "3h", "2m")
func HumanDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if days > 365 {
		years := days / 365
		return fmt.Sprintf("%dy", years)
	}
	if days > 0 {
		return fmt.Sprintf("%dd", days)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%ds", seconds)
}

// ToDate formats a timestamp as a plain date.
func ToDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return UnknownValue
	}
	return t.Format("2006-01-02")
}

// Missing returns MissingValue if string is empty
func Missing(s string) string {
	if s == "" {
		return MissingValue
	}
	return s
}

// NA returns NAValue if string is empty
func NA(s string) string {
	if s == "" {
		return NAValue
	}
	return s
}

// YesNo renders a boolean document value as Ya/Tidak.
func YesNo(v any) string {
	switch b := v.(type) {
	case bool:
		if b {
			return "Ya"
		}
		return "Tidak"
	case string:
		if b == "true" || b == "1" {
			return "Ya"
		}
		if b == "false" || b == "0" {
			return "Tidak"
		}
	}
	return NAValue
}

// Gender expands the backend's single-letter gender codes.
func Gender(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L", "M":
		return "Laki-laki"
	case "P", "F":
		return "Perempuan"
	case "":
		return NAValue
	default:
		return s
	}
}

// FormatRupiah renders an amount with thousand separators, e.g. "Rp 1.500.000".
func FormatRupiah(v any) string {
	var amount int64
	switch n := v.(type) {
	case float64:
		amount = int64(n)
	case int64:
		amount = n
	case int:
		amount = int64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return NAValue
		}
		amount = int64(parsed)
	default:
		return NAValue
	}

	neg := amount < 0
	if neg {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)
	var sb strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(d)
	}

	if neg {
		return "Rp -" + sb.String()
	}
	return "Rp " + sb.String()
}

// ExportDigits strips currency decoration, keeping digits and sign. Used as
// the export transform on money columns so spreadsheets get raw numbers.
func ExportDigits(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '-' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return ZeroValue
	}
	return sb.String()
}

// FormatSize formats bytes to human readable format
func FormatSize(v any) string {
	var bytes int64
	switch n := v.(type) {
	case float64:
		bytes = int64(n)
	case int64:
		bytes = n
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return NAValue
		}
		bytes = parsed
	default:
		return NAValue
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Truncate truncates a string to max length
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// JoinStrings joins strings with separator, skipping empty ones
func JoinStrings(sep string, ss ...string) string {
	var parts []string
	for _, s := range ss {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

// IntToStr converts int to string
func IntToStr(i int) string {
	return strconv.Itoa(i)
}

// strField reads a document value as a display string.
func strField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// countField reads a document value that may be a count or a nested list.
func countField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case []any:
		return strconv.Itoa(len(v))
	case nil:
		return ZeroValue
	default:
		return strField(fields, key)
	}
}
