package bwf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/wav"
)

const (
	maxMetadataChunk = 16 << 20
	rf64Placeholder  = 0xFFFFFFFF
)

var ixmlChunkID = [4]byte{'i', 'X', 'M', 'L'}

var (
	// ErrNotWAV is returned when the container header is not RIFF/RF64 WAVE.
	ErrNotWAV = errors.New("not a RIFF/RF64 WAVE file")
	// ErrMissingFormat is returned when no "fmt " chunk was found.
	ErrMissingFormat = errors.New("missing fmt chunk")
)

// Format captures the "fmt " chunk fields.
type Format struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	ByteRate      int
	BlockAlign    int
	BitsPerSample int
}

// Broadcast is the decoded "bext" chunk.
type Broadcast struct {
	wav.BroadcastExtension
}

// DescriptionValue returns the value of a "key=value" line inside the bext
// description. Recorders separate lines with CRLF; bare LF is accepted too.
func (b Broadcast) DescriptionValue(key string) (string, bool) {
	for _, line := range strings.Split(b.Description, "\n") {
		line = strings.TrimRight(line, "\r")
		name, value, ok := strings.Cut(line, "=")
		if !ok || name != key {
			continue
		}
		return strings.TrimSpace(value), true
	}
	return "", false
}

// Info is everything Read extracts from a file.
type Info struct {
	Format    Format
	Broadcast *Broadcast
	IXML      *IXML
	DataSize  int64
	HasData   bool
}

// FrameCount returns the number of sample frames in the data chunk.
func (i Info) FrameCount() (int64, bool) {
	if !i.HasData || i.Format.BlockAlign <= 0 {
		return 0, false
	}
	return i.DataSize / int64(i.Format.BlockAlign), true
}

// Read opens path and decodes its metadata chunks.
func Read(path string) (Info, error) {
	file, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("open wav: %w", err)
	}
	defer file.Close()

	info, err := Decode(file)
	if err != nil {
		return Info{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return info, nil
}

// Decode checks the container header and decodes the stream with the wav
// package. RF64 streams are first reduced to a RIFF image of their metadata
// chunks because the decoder only accepts RIFF.
func Decode(r io.ReadSeeker) (Info, error) {
	var header [12]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Info{}, fmt.Errorf("read header: %w", err)
	}
	container := string(header[0:4])
	if (container != "RIFF" && container != "RF64") || string(header[8:12]) != "WAVE" {
		return Info{}, ErrNotWAV
	}

	if container == "RF64" {
		layout, err := scanRF64(r)
		if err != nil {
			return Info{}, err
		}
		info, err := decodeRIFF(bytes.NewReader(layout.image))
		if err != nil {
			return Info{}, err
		}
		info.DataSize = layout.dataSize
		info.HasData = layout.hasData
		return info, nil
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Info{}, fmt.Errorf("rewind: %w", err)
	}
	return decodeRIFF(r)
}

func decodeRIFF(r io.ReadSeeker) (Info, error) {
	dec := wav.NewDecoder(r)
	dec.ReadMetadata()
	if err := dec.Err(); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Info{}, fmt.Errorf("read chunks: %w", err)
	}

	fc := dec.FormatChunk()
	if fc == nil {
		return Info{}, ErrMissingFormat
	}
	info := Info{Format: Format{
		AudioFormat:   fc.EffectiveFormatTag(),
		Channels:      int(fc.NumChannels),
		SampleRate:    int(fc.SampleRate),
		ByteRate:      int(fc.AvgBytesPerSec),
		BlockAlign:    int(fc.BlockAlign),
		BitsPerSample: int(fc.BitsPerSample),
	}}

	if dec.Metadata != nil && dec.Metadata.BroadcastExtension != nil {
		info.Broadcast = &Broadcast{BroadcastExtension: *dec.Metadata.BroadcastExtension}
	}
	for _, chunk := range dec.RawChunks() {
		if chunk.ID != ixmlChunkID {
			continue
		}
		doc, err := parseIXML(chunk.Data)
		if err != nil {
			return Info{}, err
		}
		info.IXML = &doc
		break
	}

	// ReadMetadata drains the data chunk without keeping its size. Rewinding
	// stops at the data header and records it.
	err := dec.Rewind()
	switch {
	case err == nil:
		info.DataSize = dec.PCMLen()
		info.HasData = true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
	default:
		return Info{}, fmt.Errorf("locate data chunk: %w", err)
	}
	return info, nil
}

type rf64Layout struct {
	image    []byte
	dataSize int64
	hasData  bool
}

// scanRF64 walks the chunk list following an RF64 header. The metadata
// chunks are copied into a RIFF image and the 64-bit data size is taken
// from ds64 when the data chunk carries the 32-bit placeholder.
func scanRF64(r io.ReadSeeker) (rf64Layout, error) {
	var (
		layout   rf64Layout
		body     bytes.Buffer
		ds64Data int64 = -1
	)
	body.WriteString("WAVE")
	for {
		var header [8]byte
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return rf64Layout{}, fmt.Errorf("read chunk header: %w", err)
		}
		id := string(header[0:4])
		size := int64(binary.LittleEndian.Uint32(header[4:8]))

		switch id {
		case "ds64":
			payload, err := readChunk(r, id, size)
			if err != nil {
				return rf64Layout{}, err
			}
			if len(payload) >= 16 {
				ds64Data = int64(binary.LittleEndian.Uint64(payload[8:16]))
			}
		case "data":
			if size == rf64Placeholder && ds64Data >= 0 {
				size = ds64Data
			}
			layout.dataSize = size
			layout.hasData = true
			if err := skip(r, size); err != nil {
				return rf64Layout{}, err
			}
		case "fmt ", "bext", "iXML":
			payload, err := readChunk(r, id, size)
			if err != nil {
				return rf64Layout{}, err
			}
			body.Write(header[:])
			body.Write(payload)
			if len(payload)%2 == 1 {
				body.WriteByte(0)
			}
		default:
			if err := skip(r, size); err != nil {
				return rf64Layout{}, err
			}
		}
	}

	var image bytes.Buffer
	image.WriteString("RIFF")
	_ = binary.Write(&image, binary.LittleEndian, uint32(body.Len()))
	image.Write(body.Bytes())
	layout.image = image.Bytes()
	return layout, nil
}

func readChunk(r io.Reader, id string, size int64) ([]byte, error) {
	if size > maxMetadataChunk {
		return nil, fmt.Errorf("%q chunk too large (%d bytes)", id, size)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("read %q chunk: %w", id, err)
	}
	if size%2 == 1 {
		var pad [1]byte
		_, _ = io.ReadFull(r, pad[:])
	}
	return payload, nil
}

func skip(r io.Seeker, size int64) error {
	if size%2 == 1 {
		size++
	}
	if _, err := r.Seek(size, io.SeekCurrent); err != nil {
		return fmt.Errorf("skip chunk: %w", err)
	}
	return nil
}
