package ports

// Severity classifies a notification. Levels are strictly ordered from
// SeverityDebug up to SeverityError.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// String returns the string representation of Severity
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a configuration string to a Severity, defaulting to
// SeverityError for unknown values.
func ParseSeverity(s string) Severity {
	switch s {
	case "debug":
		return SeverityDebug
	case "info":
		return SeverityInfo
	case "warning":
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Notification is one finding emitted by a check. Issue is the short
// grouping key used for per-maintainer reports and counters; Message
// carries the detail. Immutable once created.
type Notification struct {
	Severity   Severity
	Port       string
	Maintainer string
	Issue      string
	Message    string
}
