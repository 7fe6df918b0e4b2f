package domain

// LogLevel is the severity of a message recorded against a progress vertex.
// Values mirror the slog levels.
type LogLevel int

const (
	// LogLevelDebug is verbose output.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo is normal output.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn flags a recoverable condition.
	LogLevelWarn LogLevel = 4
	// LogLevelError flags a failure.
	LogLevelError LogLevel = 8
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
