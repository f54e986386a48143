package recording

import (
	"fmt"
	"strconv"
	"strings"

	"mixsplit/internal/media/bwf"
	"mixsplit/internal/services"
)

// Description keys written by the recorder into the bext description.
const (
	descSpeed   = "sSPEED"
	descCircled = "sCIRCLED"
)

// Read parses a broadcast-WAV file into a Recording.
func Read(path string) (*Recording, error) {
	info, err := bwf.Read(path)
	if err != nil {
		return nil, services.Wrap(services.ErrMetadata, "metadata", "read", path, err)
	}
	return FromInfo(path, info)
}

// FromInfo builds a Recording from decoded chunk metadata.
func FromInfo(path string, info bwf.Info) (*Recording, error) {
	fail := func(message string, err error) error {
		return services.Wrap(services.ErrMetadata, "metadata", path, message, err)
	}
	if info.Broadcast == nil {
		return nil, fail("missing bext chunk", nil)
	}
	if info.IXML == nil {
		return nil, fail("missing iXML chunk", nil)
	}
	doc := info.IXML

	take, err := strconv.Atoi(doc.Take)
	if err != nil {
		return nil, fail(fmt.Sprintf("invalid take %q", doc.Take), err)
	}

	tracks, err := buildTracks(doc.TrackList.Tracks)
	if err != nil {
		return nil, fail("invalid track list", err)
	}

	fields := Fields{
		FilePath:     path,
		DateString:   info.Broadcast.OriginationDate,
		TimeString:   info.Broadcast.OriginationTime,
		BitDepth:     info.Format.BitsPerSample,
		SampleRate:   info.Format.SampleRate,
		ChannelCount: info.Format.Channels,
		Scene:        doc.Scene,
		Take:         take,
		Tape:         doc.Tape,
		Circled:      circled(*info.Broadcast, doc),
		Speed:        speed(*info.Broadcast, doc),
		Tracks:       tracks,
	}
	if frames, ok := info.FrameCount(); ok {
		fields.SampleCount = &frames
	}

	rec, err := New(fields)
	if err != nil {
		return nil, fail("build recording", err)
	}
	return rec, nil
}

// buildTracks numbers regular tracks first and appends the mixdown at its
// fixed indices so it never shifts regular numbering.
func buildTracks(source []bwf.IXMLTrack) ([]Track, error) {
	tracks := make([]Track, 0, len(source))
	for _, t := range source {
		if t.Name == MixLeftName || t.Name == MixRightName {
			continue
		}
		channel, err := strconv.Atoi(t.ChannelIndex)
		if err != nil {
			return nil, fmt.Errorf("track %q: channel index %q: %w", t.Name, t.ChannelIndex, err)
		}
		tracks = append(tracks, Track{Index: channel - channelIndexOffset, Name: t.Name})
	}
	for _, t := range source {
		switch t.Name {
		case MixLeftName:
			tracks = append(tracks, Track{Index: MixLeftIndex, Name: t.Name})
		case MixRightName:
			tracks = append(tracks, Track{Index: MixRightIndex, Name: t.Name})
		}
	}
	return tracks, nil
}

func circled(bext bwf.Broadcast, doc *bwf.IXML) bool {
	if value, ok := bext.DescriptionValue(descCircled); ok {
		return value == "TRUE"
	}
	return strings.EqualFold(doc.Circled, "TRUE")
}

func speed(bext bwf.Broadcast, doc *bwf.IXML) string {
	if value, ok := bext.DescriptionValue(descSpeed); ok {
		return value
	}
	return strings.TrimSpace(doc.Speed.MasterSpeed)
}
