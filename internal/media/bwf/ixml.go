package bwf

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// IXML is the subset of the iXML document used by field recorders.
type IXML struct {
	Project   string        `xml:"PROJECT"`
	Scene     string        `xml:"SCENE"`
	Take      string        `xml:"TAKE"`
	Tape      string        `xml:"TAPE"`
	Circled   string        `xml:"CIRCLED"`
	Note      string        `xml:"NOTE"`
	Speed     IXMLSpeed     `xml:"SPEED"`
	TrackList IXMLTrackList `xml:"TRACK_LIST"`
}

// IXMLSpeed carries the timecode/speed block.
type IXMLSpeed struct {
	Note        string `xml:"NOTE"`
	MasterSpeed string `xml:"MASTER_SPEED"`
}

// IXMLTrackList lists the recorded tracks in file order.
type IXMLTrackList struct {
	Count  string      `xml:"TRACK_COUNT"`
	Tracks []IXMLTrack `xml:"TRACK"`
}

// IXMLTrack maps one track name to its channel index.
type IXMLTrack struct {
	ChannelIndex    string `xml:"CHANNEL_INDEX"`
	InterleaveIndex string `xml:"INTERLEAVE_INDEX"`
	Name            string `xml:"NAME"`
	Function        string `xml:"FUNCTION"`
}

func parseIXML(payload []byte) (IXML, error) {
	payload = bytes.TrimRight(payload, "\x00 \r\n\t")
	decoder := xml.NewDecoder(bytes.NewReader(payload))
	decoder.CharsetReader = charsetReader

	var doc IXML
	if err := decoder.Decode(&doc); err != nil {
		return IXML{}, fmt.Errorf("parse iXML: %w", err)
	}
	doc.Scene = strings.TrimSpace(doc.Scene)
	doc.Take = strings.TrimSpace(doc.Take)
	doc.Tape = strings.TrimSpace(doc.Tape)
	doc.Circled = strings.TrimSpace(doc.Circled)
	for i := range doc.TrackList.Tracks {
		track := &doc.TrackList.Tracks[i]
		track.ChannelIndex = strings.TrimSpace(track.ChannelIndex)
		track.InterleaveIndex = strings.TrimSpace(track.InterleaveIndex)
		track.Name = strings.TrimSpace(track.Name)
	}
	return doc, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return input, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported iXML charset %q", label)
	}
}
