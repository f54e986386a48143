// Package pathtemplate expands output path templates from recording metadata.
//
// Placeholders are literal tokens in braces, substituted without regular
// expressions. {circled} is only replaced for circled takes and is otherwise
// left in the path untouched.
package pathtemplate

import (
	"strconv"
	"strings"

	"mixsplit/internal/recording"
	"mixsplit/internal/services"
)

// Placeholder tokens.
const (
	Date        = "{date}"
	Hour        = "{hour}"
	HourShort   = "{h}"
	Minute      = "{min}"
	MinuteShort = "{m}"
	Second      = "{sec}"
	SecondShort = "{s}"
	Scene       = "{scene}"
	Take        = "{take}"
	Tape        = "{tape}"
	Circled     = "{circled}"
	TrackNumber = "{tracknumber}"
	TrackShort  = "{n}"
	TrackName   = "{trackname}"
)

const circledValue = "CIRCLED"

// Expand substitutes every recording-level placeholder. Track placeholders
// are left as they are.
func Expand(template string, rec *recording.Recording) string {
	return strings.NewReplacer(recordingPairs(rec)...).Replace(template)
}

// ExpandTrack substitutes recording-level and track-level placeholders for
// the track at index. It fails with services.ErrLookup when index is not in
// the recording's track mapping.
func ExpandTrack(template string, rec *recording.Recording, index int) (string, error) {
	name, ok := rec.TrackName(index)
	if !ok {
		return "", services.Wrap(services.ErrLookup, "template", "trackname",
			"track index "+strconv.Itoa(index)+" not in "+rec.FileName(), nil)
	}
	number := strconv.Itoa(index)
	pairs := append(recordingPairs(rec),
		TrackNumber, number,
		TrackShort, number,
		TrackName, name,
	)
	return strings.NewReplacer(pairs...).Replace(template), nil
}

func recordingPairs(rec *recording.Recording) []string {
	hour, minute, second := timeSegments(rec.TimeString())
	pairs := []string{
		Date, rec.DateString(),
		Hour, hour,
		HourShort, hour,
		Minute, minute,
		MinuteShort, minute,
		Second, second,
		SecondShort, second,
		Scene, rec.Scene(),
		Take, strconv.Itoa(rec.Take()),
		Tape, rec.Tape(),
	}
	if rec.Circled() {
		pairs = append(pairs, Circled, circledValue)
	}
	return pairs
}

// timeSegments splits "HH:MM:SS"; missing segments expand to "".
func timeSegments(value string) (string, string, string) {
	parts := strings.SplitN(value, ":", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	return parts[0], parts[1], parts[2]
}

// Replacement is one literal find/replace pair applied after expansion.
type Replacement struct {
	Find string
	With string
}

// ApplyReplacements applies pairs in order; each pair sees the output of the
// previous one.
func ApplyReplacements(path string, replacements []Replacement) string {
	for _, r := range replacements {
		if r.Find == "" {
			continue
		}
		path = strings.ReplaceAll(path, r.Find, r.With)
	}
	return path
}

// EnsureExtension appends ext unless path already ends with it, compared
// case-insensitively.
func EnsureExtension(path, ext string) string {
	if ext == "" || strings.HasSuffix(strings.ToLower(path), strings.ToLower(ext)) {
		return path
	}
	return path + ext
}
