package logger

import "octav_mcp/internal/app/port"

// slogAdapter satisfies port.Logger by forwarding to the package logger,
// prefixing every entry with fixed key/value pairs.
type slogAdapter struct {
	attrs []any
}

// NewSlogAdapter returns a port.Logger backed by the global logger. attrs are
// key/value pairs added to every entry, e.g. "component", "tools".
func NewSlogAdapter(attrs ...any) port.Logger {
	return &slogAdapter{attrs: attrs}
}

func (a *slogAdapter) with(args []any) []any {
	if len(a.attrs) == 0 {
		return args
	}
	return append(append(make([]any, 0, len(a.attrs)+len(args)), a.attrs...), args...)
}

func (a *slogAdapter) Info(msg string, args ...any)  { Info(msg, a.with(args)...) }
func (a *slogAdapter) Debug(msg string, args ...any) { Debug(msg, a.with(args)...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { Warn(msg, a.with(args)...) }
func (a *slogAdapter) Error(msg string, args ...any) { Error(msg, a.with(args)...) }
