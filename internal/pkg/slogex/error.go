package slogex

import "log/slog"

// Error renders err as a flat "error" attribute. A nil error yields an empty attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Attr{Key: "error", Value: slog.StringValue(err.Error())}
}
