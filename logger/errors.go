package logger

// ConfigurationError reports a misconfiguration detected at setup time:
// a second activation attempt, an empty target name, a nil writer. It
// is always surfaced to the caller, never swallowed, because silently
// replacing an active configuration would pull writers out from under
// running goroutines.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "structlog: configuration: " + e.Reason
}
