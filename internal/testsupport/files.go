package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Damage selects how WriteDamagedWAV breaks a take.
type Damage int

const (
	// NotWAV puts plain text where the RIFF header belongs.
	NotWAV Damage = iota
	// TruncatedHeader cuts a recorder take inside its RIFF header.
	TruncatedHeader
	// MissingFormat keeps a RIFF/WAVE header but no chunks at all.
	MissingFormat
	// MetadataOnly keeps fmt and data but drops bext and iXML.
	MetadataOnly
)

// WriteDamagedWAV writes a .wav file the metadata reader must reject,
// creating parent directories as needed.
func WriteDamagedWAV(t testing.TB, path string, damage Damage) {
	t.Helper()

	var data []byte
	switch damage {
	case NotWAV:
		data = []byte("scene notes, not audio\n")
	case TruncatedHeader:
		data = EncodeBWF(BWFFixture{Take: "1", Tracks: MixPreTracks("Boom")})[:6]
	case MissingFormat:
		data = []byte("RIFF\x04\x00\x00\x00WAVE")
	case MetadataOnly:
		data = EncodeBWF(BWFFixture{Take: "1", Tracks: MixPreTracks("Boom"), OmitBext: true, OmitIXML: true, Frames: 16})
	default:
		t.Fatalf("unknown damage %d", damage)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
