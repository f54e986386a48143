package main

import (
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"mixsplit/internal/recording"
	"mixsplit/internal/split"
)

// recordingTable lists one row per take with a footer summing duration and
// file size.
func recordingTable(recordings []*recording.Recording) string {
	tw := newTableWriter()
	tw.AppendHeader(table.Row{"File", "Scene", "Take", "Tape", "Circled", "Speed", "Codec", "Rate", "Channels", "Tracks", "Frames", "Duration", "Size"})

	var (
		total     time.Duration
		totalSize uint64
		circled   int
	)
	for _, rec := range recordings {
		size, sizeKnown := fileSize(rec.FilePath())
		sizeText := "-"
		if sizeKnown {
			sizeText = humanize.Bytes(size)
			totalSize += size
		}
		if rec.Circled() {
			circled++
		}
		total += rec.Duration()
		tw.AppendRow(table.Row{
			rec.FileName(),
			rec.Scene(),
			rec.Take(),
			rec.Tape(),
			yesNo(rec.Circled()),
			rec.Speed(),
			valueOrDash(rec.Codec()),
			humanize.SIWithDigits(float64(rec.SampleRate()), 1, "Hz"),
			rec.ChannelCount(),
			rec.Tracks().RegularCount(),
			frames(rec),
			split.FormatDuration(rec.Duration()),
			sizeText,
		})
	}
	tw.AppendFooter(table.Row{
		strconv.Itoa(len(recordings)) + " take(s)", "", "", "",
		strconv.Itoa(circled), "", "", "", "", "", "",
		split.FormatDuration(total),
		humanize.Bytes(totalSize),
	})

	tw.SetColumnConfigs(rightAligned("Take", "Rate", "Channels", "Tracks", "Frames", "Duration", "Size"))
	return tw.Render()
}

// trackTable shows how track numbers map onto ffmpeg channels for one take.
func trackTable(rec *recording.Recording) string {
	tw := newTableWriter()
	tw.SetTitle("%s", rec.FileName())
	tw.AppendHeader(table.Row{"Track", "Channel", "Name", "Mixdown"})

	origin := rec.ChannelOrigin()
	for _, track := range rec.Tracks().All() {
		tw.AppendRow(table.Row{
			track.Index,
			track.Index - origin,
			track.Name,
			yesNo(recording.IsMixdown(track.Name)),
		})
	}
	tw.SetColumnConfigs(rightAligned("Track", "Channel"))
	return tw.Render()
}

func newTableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	return tw
}

func rightAligned(names ...string) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, 0, len(names))
	for _, name := range names {
		configs = append(configs, table.ColumnConfig{
			Name:        name,
			Align:       text.AlignRight,
			AlignFooter: text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	return configs
}

func frames(rec *recording.Recording) string {
	count, ok := rec.SampleCount()
	if !ok {
		return "-"
	}
	return humanize.Comma(count)
}

func fileSize(path string) (uint64, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return uint64(info.Size()), true
}

func valueOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
