package recording

import "strings"

const (
	// MixLeftName and MixRightName are the names recorders give the stereo mixdown.
	MixLeftName  = "MixL"
	MixRightName = "MixR"

	// MixLeftIndex and MixRightIndex are the fixed track indices of the mixdown.
	MixLeftIndex  = 9
	MixRightIndex = 10

	// channelIndexOffset converts recorder channel indices to track indices.
	channelIndexOffset = 2
)

// Track is one entry of the index to name mapping.
type Track struct {
	Index int
	Name  string
}

// IsMixdown reports whether a track name denotes the left/right mixdown.
func IsMixdown(name string) bool {
	if name == MixLeftName || name == MixRightName {
		return true
	}
	return strings.Contains(name, "Mix.L") || strings.Contains(name, "Mix.R")
}

// Tracks is an insertion-ordered mapping of track index to name.
type Tracks struct {
	entries []Track
	byIndex map[int]int
}

// NewTracks builds a mapping in the given order. Later duplicates of an
// index are ignored.
func NewTracks(entries []Track) Tracks {
	t := Tracks{byIndex: make(map[int]int, len(entries))}
	for _, entry := range entries {
		if _, exists := t.byIndex[entry.Index]; exists {
			continue
		}
		t.byIndex[entry.Index] = len(t.entries)
		t.entries = append(t.entries, entry)
	}
	return t
}

// Len returns the number of tracks.
func (t Tracks) Len() int {
	return len(t.entries)
}

// All returns a copy of the tracks in insertion order.
func (t Tracks) All() []Track {
	return append([]Track(nil), t.entries...)
}

// Name looks up the name stored for index.
func (t Tracks) Name(index int) (string, bool) {
	pos, ok := t.byIndex[index]
	if !ok {
		return "", false
	}
	return t.entries[pos].Name, true
}

// Min returns the lowest index present, the batch's channel-index origin.
// Mixdown indices take part when they are the only tracks.
func (t Tracks) Min() (int, bool) {
	if len(t.entries) == 0 {
		return 0, false
	}
	lowest := t.entries[0].Index
	for _, entry := range t.entries[1:] {
		if entry.Index < lowest {
			lowest = entry.Index
		}
	}
	return lowest, true
}

// RegularCount returns the number of non-mixdown tracks.
func (t Tracks) RegularCount() int {
	count := 0
	for _, entry := range t.entries {
		if !IsMixdown(entry.Name) {
			count++
		}
	}
	return count
}
