package split

import (
	"os"
	"path/filepath"
	"strings"

	"mixsplit/internal/recording"
	"mixsplit/internal/services"
)

const wavExtension = ".wav"

// Discover lists the .wav files directly inside each directory. Directory
// argument order is kept; files within a directory follow os.ReadDir order.
func Discover(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "discover", dir, "cannot list input directory", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if !strings.EqualFold(filepath.Ext(entry.Name()), wavExtension) {
				continue
			}
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	return files, nil
}

// Load reads every path. The first failure aborts the batch.
func Load(paths []string) ([]*recording.Recording, error) {
	return load(paths, recording.Read)
}

func load(paths []string, read func(string) (*recording.Recording, error)) ([]*recording.Recording, error) {
	recordings := make([]*recording.Recording, 0, len(paths))
	for _, path := range paths {
		rec, err := read(path)
		if err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}
	return recordings, nil
}
