package xrun

import "log/slog"

// Option configures a Group.
type Option func(*groupOptions)

type groupOptions struct {
	logger *slog.Logger
	name   string
}

func defaultOptions() *groupOptions {
	return &groupOptions{
		logger: slog.Default(),
		name:   "xrun",
	}
}

// WithLogger sets the logger used for task start/stop events.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *groupOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName sets the Group's name, used to tag log lines from GoWithName.
// Defaults to "xrun".
func WithName(name string) Option {
	return func(o *groupOptions) {
		if name != "" {
			o.name = name
		}
	}
}
