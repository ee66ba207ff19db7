package render

const (
	// Record statuses served by the backend
	StatusActive    = "aktif"
	StatusGraduated = "lulus"
	StatusDropped   = "keluar"
	StatusOnLeave   = "cuti"
	StatusInactive  = "nonaktif"
	StatusPending   = "pending"

	// Display values
	MissingValue = "<none>"
	NAValue      = "n/a"
	UnknownValue = "<unknown>"
	ZeroValue    = "0"
	Blank        = ""
)
