package engine

// Logger is the interface for structured logging during execution.
// Compatible with *slog.Logger and other structured loggers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds runtime settings. Settings from multiple config functions
// are merged with MergeConfigs (last wins).
type Config struct {
	// FailFast stops execution on the first scenario failure.
	FailFast bool

	// Logger sets a custom logger. If nil, a no-op logger is used.
	Logger Logger
}

// MergeConfigs combines multiple configs into one. Later configs override
// earlier ones (last wins).
func MergeConfigs(configs ...*Config) *Config {
	result := &Config{}
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if cfg.FailFast {
			result.FailFast = true
		}
		if cfg.Logger != nil {
			result.Logger = cfg.Logger
		}
	}
	return result
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return noopLogger{}
}

// noopLogger discards all log messages.
type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}
