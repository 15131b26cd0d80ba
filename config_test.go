package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"floppyprobe/probe"
)

func optionsFor(t *testing.T, cfgFile string, flags map[string]string) (probeOptions, error) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	cmd := &cobra.Command{Use: "probe"}
	addProbeFlags(cmd)
	for k, v := range flags {
		if err := cmd.Flags().Set(k, v); err != nil {
			t.Fatal(err)
		}
	}
	v, err := loadConfig(cmd, cfgFile)
	if err != nil {
		return probeOptions{}, err
	}
	return probeOptionsFrom(v)
}

func TestDefaults(t *testing.T) {
	o, err := optionsFor(t, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := o.media()
	if err != nil {
		t.Fatal(err)
	}
	want := probe.Media{Drive: 0, Size: probe.Size35, Tracks: 80}
	if m != want {
		t.Errorf("media = %+v, want %+v", m, want)
	}
	if o.Retries != 6 || o.Fluxengine != "fluxengine" || o.TUI != tuiAuto {
		t.Errorf("options = %+v", o)
	}
}

func TestFlagValidation(t *testing.T) {
	tests := []struct {
		name    string
		flags   map[string]string
		wantErr bool
	}{
		{"lower case drive b", map[string]string{"drive": "b", "size": "5.25", "tracks": "40"}, false},
		{"bad drive", map[string]string{"drive": "C"}, true},
		{"bad tracks", map[string]string{"tracks": "77"}, true},
		{"bad size", map[string]string{"size": "8"}, true},
		{"bad tui", map[string]string{"tui": "sometimes"}, true},
		{"negative retries", map[string]string{"retries": "-1"}, true},
		{"save and replay", map[string]string{"save-dir": "a", "replay-dir": "b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := optionsFor(t, "", tt.flags)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvironment(t *testing.T) {
	t.Setenv("FLOPPYPROBE_SIZE", "5.25")
	t.Setenv("FLOPPYPROBE_SAVE_DIR", "/tmp/images")
	t.Setenv("FLOPPYPROBE_TRACKS", "40")
	o, err := optionsFor(t, "", map[string]string{"tracks": "80"})
	if err != nil {
		t.Fatal(err)
	}
	if o.Size != "5.25" || o.SaveDir != "/tmp/images" {
		t.Errorf("environment not applied: %+v", o)
	}
	if o.Tracks != 80 {
		t.Errorf("flag should beat environment, tracks = %d", o.Tracks)
	}
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "probe.yaml")
	if err := os.WriteFile(cfg, []byte("drive: B\nretries: 3\nfluxengine: /usr/local/bin/fluxengine\n"), 0644); err != nil {
		t.Fatal(err)
	}
	o, err := optionsFor(t, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if o.Drive != "B" || o.Retries != 3 || o.Fluxengine != "/usr/local/bin/fluxengine" {
		t.Errorf("config not applied: %+v", o)
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, err := optionsFor(t, "/nonexistent/floppyprobe.yaml", nil); err == nil {
		t.Error("missing explicit config file accepted")
	}
}

func TestUseTUI(t *testing.T) {
	tests := []struct {
		o    probeOptions
		want bool
	}{
		{probeOptions{TUI: tuiAlways}, true},
		{probeOptions{TUI: tuiNever}, false},
		{probeOptions{TUI: tuiAlways, JSON: true}, false},
	}
	for _, tt := range tests {
		if got := tt.o.useTUI(); got != tt.want {
			t.Errorf("%+v: useTUI = %v, want %v", tt.o, got, tt.want)
		}
	}
}
