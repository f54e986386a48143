package logging

import (
	"context"
	"log/slog"

	"mixsplit/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID identifies one invocation of the split command.
	FieldRunID = "run_id"
	// FieldTake is the take number being processed.
	FieldTake = "take"
	// FieldScene is the scene name of the take being processed.
	FieldScene = "scene"
	// FieldEventType tags notable events (take_skipped, track_written, ...).
	FieldEventType = "event_type"
	// FieldErrorKind classifies a failure by its services marker.
	FieldErrorKind = "error_kind"
)

// ErrorKind tags err with the name of the services marker it carries.
func ErrorKind(err error) slog.Attr {
	return slog.String(FieldErrorKind, services.Kind(err))
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 3)
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if take, ok := services.TakeFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldTake, take))
	}
	if scene, ok := services.SceneFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldScene, scene))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
