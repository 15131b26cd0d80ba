package fluxengine

import (
	"errors"
	"os"
	"path/filepath"

	"floppyprobe/probe"
)

// Replay serves track images previously kept with Source.SaveDir, so a disk
// can be classified again without the drive.
type Replay struct {
	Dir string
	Log probe.Sink
}

// ReadTrack returns the saved image for decoder and cylinder. A missing
// image reads as an empty track. Media is ignored.
func (r *Replay) ReadTrack(decoder string, cylinder int, _ probe.Media) []byte {
	path := filepath.Join(r.Dir, ImageName(decoder, cylinder))
	data, err := os.ReadFile(path)
	if err != nil {
		if r.Log != nil {
			if errors.Is(err, os.ErrNotExist) {
				r.Log.Debugf("No saved image %s", path)
			} else {
				r.Log.Errorf("Cannot read %s: %v", path, err)
			}
		}
		return nil
	}
	return data
}
