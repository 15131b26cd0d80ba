// Package fluxengine reads single decoded tracks through the fluxengine
// command line tool, or replays images it saved earlier.
package fluxengine

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"floppyprobe/probe"
)

// DefaultRetries matches what fluxengine users typically pass for worn media.
const DefaultRetries = 6

// RunFunc runs a command and returns its combined stdout and stderr.
type RunFunc func(name string, args ...string) ([]byte, error)

func execRun(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Source is a probe.TrackSource backed by the fluxengine binary. With
// SaveDir set, every image read is kept there under ImageName instead of
// going to a temp file that is removed afterwards.
type Source struct {
	Binary  string // defaults to "fluxengine" on $PATH
	Retries int
	SaveDir string
	Log     probe.Sink
	Run     RunFunc
}

// ImageName is the file name a track image is saved under.
func ImageName(decoder string, cylinder int) string {
	return fmt.Sprintf("%s-c%d.img", decoder, cylinder)
}

// Args builds the fluxengine command line for reading one cylinder into
// output. The .img suffix on output selects a raw sector image.
func (s *Source) Args(decoder string, cylinder int, m probe.Media, output string) []string {
	args := []string{"read", decoder}
	if m.FortyTrack() {
		args = append(args, "40track_drive")
	}
	retries := s.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}
	args = append(args,
		"-s", "drive:"+strconv.Itoa(m.Drive),
		"--output", output,
		"--cylinders", strconv.Itoa(cylinder),
		"--decoder.retries="+strconv.Itoa(retries),
	)
	if m.Device != "" {
		args = append(args, "--usb.greaseweazle.port="+m.Device)
	}
	return args
}

// ReadTrack runs fluxengine and returns the image it wrote. Any failure is
// logged and yields nil.
func (s *Source) ReadTrack(decoder string, cylinder int, m probe.Media) []byte {
	log := s.log()
	output, cleanup, err := s.outputPath(decoder, cylinder)
	if err != nil {
		log.Errorf("Cannot create image file: %v", err)
		return nil
	}
	ok := false
	defer func() { cleanup(ok) }()

	bin := s.Binary
	if bin == "" {
		bin = "fluxengine"
	}
	args := s.Args(decoder, cylinder, m, output)
	log.Debugf("Fluxengine commandline: %s %v", bin, args)

	run := s.Run
	if run == nil {
		run = execRun
	}
	out, err := run(bin, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Errorf("Couldn't run %s %v: rc=%d\n%s", bin, args, exitErr.ExitCode(), out)
		} else {
			log.Errorf("Couldn't run %s %v: %v\n%s", bin, args, err, out)
		}
		return nil
	}

	data, err := os.ReadFile(output)
	if err != nil {
		log.Errorf("Cannot read %s: %v", output, err)
		return nil
	}
	ok = true
	return data
}

// outputPath picks the image file for one read. The cleanup func is told
// whether the read succeeded: temp files always go, a saved image only stays
// when it came from a successful run, so a replay never sees a stale one.
func (s *Source) outputPath(decoder string, cylinder int) (string, func(ok bool), error) {
	if s.SaveDir != "" {
		if err := os.MkdirAll(s.SaveDir, 0755); err != nil && !errors.Is(err, os.ErrExist) {
			return "", nil, err
		}
		name := filepath.Join(s.SaveDir, ImageName(decoder, cylinder))
		if err := os.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", nil, err
		}
		return name, func(ok bool) {
			if !ok {
				_ = os.Remove(name)
			}
		}, nil
	}
	f, err := os.CreateTemp("", "floppyprobe-*.img")
	if err != nil {
		return "", nil, err
	}
	name := f.Name()
	_ = f.Close()
	return name, func(bool) { _ = os.Remove(name) }, nil
}

func (s *Source) log() probe.Sink {
	if s.Log == nil {
		return probe.NopSink{}
	}
	return s.Log
}
