// Package services defines shared utilities consumed by the split planner and
// its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, take numbers, and scene names for
//     logging.
//   - Structured error markers plus the Wrap helper so validation, metadata,
//     lookup, and external tool failures stay distinguishable with errors.Is.
//
// External collaborators live in sub-packages (ffmpeg, browser).
package services
