package services

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	takeKey  contextKey = "take"
	sceneKey contextKey = "scene"
)

// WithRunID annotates context with the identifier of the current split run.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTake annotates context with the take number being processed.
func WithTake(ctx context.Context, take int) context.Context {
	return context.WithValue(ctx, takeKey, take)
}

// TakeFromContext extracts the take number if present.
func TakeFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(takeKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}

// WithScene annotates context with the scene name of the take.
func WithScene(ctx context.Context, scene string) context.Context {
	if scene == "" {
		return ctx
	}
	return context.WithValue(ctx, sceneKey, scene)
}

// SceneFromContext returns the scene name if present.
func SceneFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(sceneKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
