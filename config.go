package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"floppyprobe/fluxengine"
	"floppyprobe/probe"
)

const envPrefix = "FLOPPYPROBE"

// TUI modes
const (
	tuiAuto   = "auto"
	tuiAlways = "always"
	tuiNever  = "never"
)

// probeOptions is everything the probe command needs, after flags, the
// environment and the config file have been merged.
type probeOptions struct {
	Drive      string
	Tracks     int
	Size       string
	Device     string
	Debug      bool
	Fluxengine string
	Retries    int
	SaveDir    string
	ReplayDir  string
	TUI        string
	JSON       bool
}

func addProbeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("drive", "A", "which drive to probe: A|B")
	f.Int("tracks", 80, "number of tracks the drive can step: 40|80")
	f.String("size", "3.5", "media size: 3.5|5.25")
	f.String("device", "", "Greaseweazle device (default: first one found)")
	f.Bool("debug", false, "turn on debugging output and track dumps")
	f.String("fluxengine", "fluxengine", "fluxengine binary")
	f.Int("retries", fluxengine.DefaultRetries, "decoder retries per track")
	f.String("save-dir", "", "keep every track image read in this directory")
	f.String("replay-dir", "", "classify images from a previous --save-dir instead of the drive")
	f.String("tui", tuiAuto, "full-screen progress: auto|always|never")
	f.Bool("json", false, "print the result as JSON")
}

// loadConfig layers a .env file, FLOPPYPROBE_* variables and an optional
// config file under the command's flags. Explicit flags always win.
func loadConfig(cmd *cobra.Command, cfgFile string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("floppyprobe")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	return v, nil
}

func probeOptionsFrom(v *viper.Viper) (probeOptions, error) {
	o := probeOptions{
		Drive:      v.GetString("drive"),
		Tracks:     v.GetInt("tracks"),
		Size:       v.GetString("size"),
		Device:     v.GetString("device"),
		Debug:      v.GetBool("debug"),
		Fluxengine: v.GetString("fluxengine"),
		Retries:    v.GetInt("retries"),
		SaveDir:    v.GetString("save-dir"),
		ReplayDir:  v.GetString("replay-dir"),
		TUI:        strings.ToLower(v.GetString("tui")),
		JSON:       v.GetBool("json"),
	}
	if o.Fluxengine == "" {
		o.Fluxengine = "fluxengine"
	}
	if o.SaveDir != "" && o.ReplayDir != "" {
		return o, fmt.Errorf("choose at most one of --save-dir or --replay-dir")
	}
	switch o.TUI {
	case tuiAuto, tuiAlways, tuiNever:
	default:
		return o, fmt.Errorf("unknown --tui %q (want auto, always or never)", o.TUI)
	}
	if o.Retries < 0 {
		return o, fmt.Errorf("--retries must not be negative")
	}
	_, err := o.media()
	return o, err
}

// media turns the drive options into probe.Media.
func (o probeOptions) media() (probe.Media, error) {
	var m probe.Media
	switch strings.ToLower(o.Drive) {
	case "a":
		m.Drive = 0
	case "b":
		m.Drive = 1
	default:
		return m, fmt.Errorf("unknown --drive %q (want A or B)", o.Drive)
	}
	if o.Tracks != 40 && o.Tracks != 80 {
		return m, fmt.Errorf("unknown --tracks %d (want 40 or 80)", o.Tracks)
	}
	m.Tracks = o.Tracks
	size, err := probe.ParseSize(o.Size)
	if err != nil {
		return m, err
	}
	m.Size = size
	m.Device = o.Device
	return m, nil
}

// useTUI resolves the --tui mode. JSON output never uses the dashboard.
func (o probeOptions) useTUI() bool {
	if o.JSON {
		return false
	}
	switch o.TUI {
	case tuiAlways:
		return true
	case tuiAuto:
		return isTerminal(os.Stdout.Fd())
	}
	return false
}
