package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.bug.st/serial/enumerator"

	"floppyprobe/probe"
)

func TestReport(t *testing.T) {
	m := probe.Media{Size: probe.Size35, Tracks: 80}
	tests := []struct {
		name string
		r    probe.Result
		want string
	}{
		{"identified", probe.Result{Verdict: probe.Verdict{Format: probe.FormatIBM1440, Filesystem: probe.FilesystemFAT12}, Probe: "bpb"}, "Format: ibm1440, Filesystem: fat12\n"},
		{"no filesystem", probe.Result{Verdict: probe.Verdict{Format: probe.FormatAmiga}, Probe: "amiga"}, "Format: amiga, Filesystem: None\n"},
		{"unidentified", probe.Result{}, "Not a common format or it is corrupt\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := report(&buf, probeOptions{}, m, tt.r); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestReportJSON(t *testing.T) {
	var buf bytes.Buffer
	m := probe.Media{Drive: 1, Size: probe.Size525, Tracks: 40}
	r := probe.Result{Verdict: probe.Verdict{Format: probe.FormatCommodore1541, Filesystem: probe.FilesystemCBMDOS2A}, Probe: "commodore1541"}
	if err := report(&buf, probeOptions{JSON: true}, m, r); err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["format"] != "commodore1541" || got["filesystem"] != "2A" || got["probe"] != "commodore1541" || got["identified"] != true {
		t.Errorf("json = %s", buf.String())
	}
	media, _ := got["media"].(map[string]any)
	if media["size"] != "5.25" || media["tracks"] != float64(40) {
		t.Errorf("media = %v", media)
	}
}

// Classify a replayed 720K DOS disk end to end.
func TestReplayProbe(t *testing.T) {
	dir := t.TempDir()
	boot := make([]byte, 9*512)
	boot[0], boot[1], boot[2] = 0xEB, 0x3C, 0x90
	boot[0x0D] = 2
	boot[0x13], boot[0x14] = 0xA0, 0x05 // 1440 sectors
	boot[0x1FE], boot[0x1FF] = 0x55, 0xAA
	if err := os.WriteFile(filepath.Join(dir, "ibm720-c0.img"), boot, 0644); err != nil {
		t.Fatal(err)
	}
	o := probeOptions{Drive: "A", Tracks: 80, Size: "3.5", ReplayDir: dir}
	m, err := o.media()
	if err != nil {
		t.Fatal(err)
	}
	var log bytes.Buffer
	c := probe.NewClassifier(trackSource(o, newStderrSink(&log, false)), nil)
	if got := c.Classify(m); got != (probe.Verdict{Format: probe.FormatIBM720, Filesystem: probe.FilesystemFAT12}) {
		t.Errorf("got %+v", got)
	}
}

func TestStderrSink(t *testing.T) {
	var buf bytes.Buffer
	quiet := newStderrSink(&buf, false)
	quiet.Debugf("hidden %d", 1)
	quiet.Dump([]byte{1, 2, 3}, 0)
	quiet.Warnf("Logical sectors %d", 1440)
	quiet.Errorf("Couldn't run")
	if got := buf.String(); got != "WARNING: Logical sectors 1440\nERROR: Couldn't run\n" {
		t.Errorf("got %q", got)
	}

	buf.Reset()
	loud := newStderrSink(&buf, true)
	loud.Debugf("Probing for %s", "ibm1440")
	loud.Dump([]byte("AB"), 0)
	if !strings.HasPrefix(buf.String(), "DEBUG: Probing for ibm1440\n0000 41 42") {
		t.Errorf("got %q", buf.String())
	}
}

func TestGreaseweazlePorts(t *testing.T) {
	ports := []*enumerator.PortDetails{
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyUSB0", IsUSB: true, VID: "0403", PID: "6001", Product: "FT232R"},
		{Name: "/dev/ttyACM0", IsUSB: true, VID: "1209", PID: "4d69", SerialNumber: "GW1234", Product: "Greaseweazle"},
	}
	if got := findGreaseweazle(ports); got != "/dev/ttyACM0" {
		t.Errorf("findGreaseweazle = %q", got)
	}
	if got := findGreaseweazle(ports[:2]); got != "" {
		t.Errorf("findGreaseweazle without board = %q", got)
	}

	var buf bytes.Buffer
	printPorts(&buf, ports)
	out := buf.String()
	if strings.Contains(out, "ttyS0") {
		t.Errorf("non-USB port listed:\n%s", out)
	}
	if !strings.Contains(out, "/dev/ttyACM0 *") || !strings.Contains(out, "GW1234") {
		t.Errorf("Greaseweazle not marked:\n%s", out)
	}

	buf.Reset()
	printPorts(&buf, nil)
	if !strings.Contains(buf.String(), "<none detected>") {
		t.Errorf("got %q", buf.String())
	}
}

func TestRunProbeChecksSource(t *testing.T) {
	base := probeOptions{Drive: "A", Tracks: 80, Size: "3.5", TUI: tuiNever, Device: "none"}

	o := base
	o.ReplayDir = filepath.Join(t.TempDir(), "missing")
	if err := runProbe(o); err == nil {
		t.Error("missing replay dir accepted")
	}

	o = base
	o.Fluxengine = "floppyprobe-no-such-fluxengine"
	if err := runProbe(o); err == nil || !strings.Contains(err.Error(), "fluxengine not found") {
		t.Errorf("err = %v, want fluxengine not found", err)
	}
}
