package split

import (
	"fmt"

	"mixsplit/internal/filter"
	"mixsplit/internal/pathtemplate"
	"mixsplit/internal/services"
	"mixsplit/internal/services/ffmpeg"
)

// Options controls one split run.
type Options struct {
	Template     string
	Takes        filter.Filter
	Tracks       filter.Filter
	OnlyCircled  bool
	Replacements []pathtemplate.Replacement
	Format       ffmpeg.Format
	BitDepth     int
	Overwrite    bool
	DryRun       bool
	Open         bool
}

// Validate checks option combinations before any file is touched.
func (o Options) Validate() error {
	if o.Template == "" {
		return services.Wrap(services.ErrValidation, "split", "options", "output template is required", nil)
	}
	switch o.BitDepth {
	case 0, 16, 24:
	default:
		return services.Wrap(services.ErrValidation, "split", "options", fmt.Sprintf("unsupported bit depth %d", o.BitDepth), nil)
	}
	switch o.Format {
	case "", ffmpeg.FormatWAV, ffmpeg.FormatFLAC:
	default:
		return services.Wrap(services.ErrValidation, "split", "options", fmt.Sprintf("unsupported format %q", o.Format), nil)
	}
	return nil
}

// ReplacementCountError reports --replace/--with lists of different length.
type ReplacementCountError struct {
	Replace int
	With    int
}

func (e *ReplacementCountError) Error() string {
	return fmt.Sprintf("Error:    You wrote %d \"--replace\" and %d \"--with\" options!\n"+
		"Solution: Use a \"--with\" option for each \"--replace\" option (same count)", e.Replace, e.With)
}

func (e *ReplacementCountError) Unwrap() error {
	return services.ErrValidation
}

// PairReplacements zips find and with lists in order.
func PairReplacements(find, with []string) ([]pathtemplate.Replacement, error) {
	if len(find) != len(with) {
		return nil, &ReplacementCountError{Replace: len(find), With: len(with)}
	}
	pairs := make([]pathtemplate.Replacement, len(find))
	for i := range find {
		pairs[i] = pathtemplate.Replacement{Find: find[i], With: with[i]}
	}
	return pairs, nil
}

// OutputBitDepth resolves the --24/--16 switches; 24 wins when both are set.
// fallback applies when neither is set.
func OutputBitDepth(bit24, bit16 bool, fallback int) int {
	switch {
	case bit24:
		return 24
	case bit16:
		return 16
	default:
		return fallback
	}
}

// OutputFormat maps the --flac switch to a format.
func OutputFormat(flac bool) ffmpeg.Format {
	if flac {
		return ffmpeg.FormatFLAC
	}
	return ffmpeg.FormatWAV
}
