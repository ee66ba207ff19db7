package ui

// IndicatorMode represents the current input mode.
type IndicatorMode int

const (
	// ModeNormal is the default navigation mode.
	ModeNormal IndicatorMode = iota
	// ModeCommand is for entering commands (: prefix).
	ModeCommand
	// ModeFilter is for filtering records (/ prefix).
	ModeFilter
)

// Mode indicators.
const (
	IndicatorNormal  = "🏠"
	IndicatorCommand = "🏠"
	IndicatorFilter  = "🔍"
)
