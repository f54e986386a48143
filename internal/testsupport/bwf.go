package testsupport

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// BWFTrack is one iXML TRACK entry. ChannelIndex is the raw recorder index.
type BWFTrack struct {
	ChannelIndex int
	Name         string
}

// BWFFixture describes a small broadcast-WAV file for tests.
type BWFFixture struct {
	Date       string
	Time       string
	BitDepth   int
	SampleRate int
	Channels   int
	Frames     int
	Scene      string
	Take       string
	Tape       string
	Circled    bool
	Speed      string
	Tracks     []BWFTrack
	OmitBext   bool
	OmitIXML   bool
	RF64       bool
	// ExtraChunk inserts an unknown odd-sized chunk before fmt.
	ExtraChunk bool
}

// MixPreTracks returns n regular tracks on recorder channels 3.. followed by
// the MixL/MixR mixdown.
func MixPreTracks(names ...string) []BWFTrack {
	tracks := make([]BWFTrack, 0, len(names)+2)
	for i, name := range names {
		tracks = append(tracks, BWFTrack{ChannelIndex: i + 3, Name: name})
	}
	return append(tracks,
		BWFTrack{ChannelIndex: 1, Name: "MixL"},
		BWFTrack{ChannelIndex: 2, Name: "MixR"},
	)
}

// WriteBWF encodes fx and writes it to path, creating parent directories.
func WriteBWF(t testing.TB, path string, fx BWFFixture) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, EncodeBWF(fx), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// EncodeBWF renders fx as a RIFF (or RF64) WAVE byte stream.
func EncodeBWF(fx BWFFixture) []byte {
	if fx.BitDepth == 0 {
		fx.BitDepth = 24
	}
	if fx.SampleRate == 0 {
		fx.SampleRate = 48000
	}
	if fx.Channels == 0 {
		fx.Channels = len(fx.Tracks)
		if fx.Channels == 0 {
			fx.Channels = 1
		}
	}

	var body bytes.Buffer
	body.WriteString("WAVE")
	if fx.RF64 {
		ds64 := make([]byte, 28)
		dataSize := uint64(fx.Frames * blockAlign(fx))
		binary.LittleEndian.PutUint64(ds64[8:16], dataSize)
		writeChunk(&body, "ds64", ds64)
	}
	if fx.ExtraChunk {
		writeChunk(&body, "JUNK", []byte{1, 2, 3})
	}
	writeChunk(&body, "fmt ", formatChunk(fx))
	if !fx.OmitBext {
		writeChunk(&body, "bext", bextChunk(fx))
	}
	if !fx.OmitIXML {
		writeChunk(&body, "iXML", []byte(ixmlDocument(fx)))
	}
	data := make([]byte, fx.Frames*blockAlign(fx))
	if fx.RF64 {
		body.WriteString("data")
		_ = binary.Write(&body, binary.LittleEndian, uint32(0xFFFFFFFF))
		body.Write(data)
	} else {
		writeChunk(&body, "data", data)
	}

	var out bytes.Buffer
	if fx.RF64 {
		out.WriteString("RF64")
		_ = binary.Write(&out, binary.LittleEndian, uint32(0xFFFFFFFF))
	} else {
		out.WriteString("RIFF")
		_ = binary.Write(&out, binary.LittleEndian, uint32(body.Len()))
	}
	out.Write(body.Bytes())
	return out.Bytes()
}

func blockAlign(fx BWFFixture) int {
	return fx.Channels * (fx.BitDepth / 8)
}

func writeChunk(w *bytes.Buffer, id string, payload []byte) {
	w.WriteString(id)
	_ = binary.Write(w, binary.LittleEndian, uint32(len(payload)))
	w.Write(payload)
	if len(payload)%2 == 1 {
		w.WriteByte(0)
	}
}

func formatChunk(fx BWFFixture) []byte {
	payload := make([]byte, 16)
	audioFormat := uint16(1)
	if fx.BitDepth == 32 {
		audioFormat = 3
	}
	align := blockAlign(fx)
	le := binary.LittleEndian
	le.PutUint16(payload[0:2], audioFormat)
	le.PutUint16(payload[2:4], uint16(fx.Channels))
	le.PutUint32(payload[4:8], uint32(fx.SampleRate))
	le.PutUint32(payload[8:12], uint32(fx.SampleRate*align))
	le.PutUint16(payload[12:14], uint16(align))
	le.PutUint16(payload[14:16], uint16(fx.BitDepth))
	return payload
}

func bextChunk(fx BWFFixture) []byte {
	payload := make([]byte, 602)
	var desc strings.Builder
	if fx.Speed != "" {
		fmt.Fprintf(&desc, "sSPEED=%s\r\n", fx.Speed)
	}
	if fx.Circled {
		desc.WriteString("sCIRCLED=TRUE\r\n")
	}
	fmt.Fprintf(&desc, "sTAKE=%s\r\n", fx.Take)
	copy(payload[0:256], desc.String())
	copy(payload[256:288], "MixPre-10 II")
	copy(payload[320:330], fx.Date)
	copy(payload[330:338], fx.Time)
	binary.LittleEndian.PutUint16(payload[346:348], 1)
	return payload
}

func ixmlDocument(fx BWFFixture) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n<BWFXML>\n")
	b.WriteString("<IXML_VERSION>1.61</IXML_VERSION>\n")
	fmt.Fprintf(&b, "<SCENE>%s</SCENE>\n", html.EscapeString(fx.Scene))
	fmt.Fprintf(&b, "<TAKE>%s</TAKE>\n", html.EscapeString(fx.Take))
	fmt.Fprintf(&b, "<TAPE>%s</TAPE>\n", html.EscapeString(fx.Tape))
	if fx.Circled {
		b.WriteString("<CIRCLED>TRUE</CIRCLED>\n")
	} else {
		b.WriteString("<CIRCLED>FALSE</CIRCLED>\n")
	}
	fmt.Fprintf(&b, "<TRACK_LIST>\n<TRACK_COUNT>%d</TRACK_COUNT>\n", len(fx.Tracks))
	for i, track := range fx.Tracks {
		fmt.Fprintf(&b, "<TRACK><CHANNEL_INDEX>%d</CHANNEL_INDEX><INTERLEAVE_INDEX>%d</INTERLEAVE_INDEX><NAME>%s</NAME></TRACK>\n",
			track.ChannelIndex, i+1, html.EscapeString(track.Name))
	}
	b.WriteString("</TRACK_LIST>\n</BWFXML>\n")
	return b.String()
}
