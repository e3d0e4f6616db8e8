package model

// Status represents the outcome of a single check.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Status int

const (
	// StatusPass indicates the check's assertion held.
	StatusPass Status = iota

	// StatusFail indicates the check's assertion did not hold.
	// Any failed check makes the overall run exit non-zero.
	StatusFail

	// StatusSkip indicates the check could not run because its precondition
	// was unmet, typically a missing page. Skips never affect the exit code;
	// the missing precondition is reported by its own failed check.
	StatusSkip

	// StatusWarn indicates an advisory finding that does not affect the
	// exit code. Used by asset hygiene checks such as EXIF detection.
	StatusWarn
)

// String returns a human-readable representation of the status.
func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusSkip:
		return "SKIP"
	case StatusWarn:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

// Marker returns the short marker used in line-oriented console output.
func (s Status) Marker() string {
	switch s {
	case StatusPass:
		return "+"
	case StatusFail:
		return "x"
	case StatusSkip:
		return "-"
	case StatusWarn:
		return "!"
	default:
		return "?"
	}
}
