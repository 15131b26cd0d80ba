// floppyprobe
// Identify the format and filesystem of a floppy in a Greaseweazle or
// FluxEngine drive by reading a track or two through fluxengine.
//
// Build:
//
//	go build -o floppyprobe .
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"floppyprobe/fluxengine"
	"floppyprobe/hexdump"
	"floppyprobe/probe"
)

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
}

/* ===================== Probe ===================== */

// trackSource picks replayed images or the live drive.
func trackSource(o probeOptions, log probe.Sink) probe.TrackSource {
	if o.ReplayDir != "" {
		return &fluxengine.Replay{Dir: o.ReplayDir, Log: log}
	}
	return &fluxengine.Source{
		Binary:  o.Fluxengine,
		Retries: o.Retries,
		SaveDir: o.SaveDir,
		Log:     log,
	}
}

// resolveDevice fills in a Greaseweazle port when none was given.
func resolveDevice(o *probeOptions, log probe.Sink) {
	if o.Device != "" || o.ReplayDir != "" {
		return
	}
	ports, err := listPorts()
	if err != nil {
		log.Debugf("%v", err)
		return
	}
	if dev := findGreaseweazle(ports); dev != "" {
		log.Debugf("Using Greaseweazle on %s", dev)
		o.Device = dev
	}
}

type jsonReport struct {
	probe.Result
	Identified bool        `json:"identified"`
	Media      probe.Media `json:"media"`
}

func report(w io.Writer, o probeOptions, m probe.Media, r probe.Result) error {
	if o.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonReport{Result: r, Identified: r.Identified(), Media: m})
	}
	if !r.Identified() {
		_, err := fmt.Fprintln(w, "Not a common format or it is corrupt")
		return err
	}
	_, err := fmt.Fprintln(w, r.Verdict.String())
	return err
}

func runProbe(o probeOptions) error {
	var log probe.Sink = newStderrSink(os.Stderr, o.Debug)
	if o.ReplayDir != "" {
		if fi, err := os.Stat(o.ReplayDir); err != nil {
			return fmt.Errorf("replay dir: %w", err)
		} else if !fi.IsDir() {
			return fmt.Errorf("replay dir %s is not a directory", o.ReplayDir)
		}
	} else if _, err := exec.LookPath(o.Fluxengine); err != nil {
		return fmt.Errorf("fluxengine not found: %w", err)
	}
	resolveDevice(&o, log)
	m, err := o.media()
	if err != nil {
		return err
	}

	if o.useTUI() {
		r, err := classifyWithUI(o, m)
		if err != nil {
			return err
		}
		return report(os.Stdout, o, m, r)
	}

	c := probe.NewClassifier(trackSource(o, log), log)
	return report(os.Stdout, o, m, c.Result(m))
}

/* ===================== Main ===================== */

func main() {
	root := &cobra.Command{
		Use:   "floppyprobe",
		Short: "Floppy disk format and filesystem detector",
		Long:  "Probe a floppy through fluxengine and report its format (IBM PC, Macintosh, Amiga, Commodore 1541) and filesystem",
	}
	var cfgFile string
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./floppyprobe.yaml if present)")

	probeCmd := &cobra.Command{
		Use:   "probe",
		Short: "Identify the disk in a drive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := loadConfig(cmd, cfgFile)
			if err != nil {
				return err
			}
			o, err := probeOptionsFrom(v)
			if err != nil {
				return err
			}
			return runProbe(o)
		},
	}
	addProbeFlags(probeCmd)
	root.AddCommand(probeCmd)

	// Dump a saved track image
	var (
		dumpIn    string
		dumpLimit int
	)
	dumpCmd := &cobra.Command{
		Use:   "dump --in <image>",
		Short: "Hex dump a track image",
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := os.ReadFile(dumpIn)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			return hexdump.Dump(os.Stdout, data, dumpLimit)
		},
	}
	dumpCmd.Flags().StringVar(&dumpIn, "in", "", "track image file")
	dumpCmd.Flags().IntVar(&dumpLimit, "limit", 0, "bytes to dump (0 = all)")
	_ = dumpCmd.MarkFlagRequired("in")
	root.AddCommand(dumpCmd)

	// Device discovery (read-only)
	deviceCmd := &cobra.Command{
		Use:   "device",
		Short: "Flux adapter utilities",
	}
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List USB serial adapters; Greaseweazle boards are marked with *",
		RunE: func(_ *cobra.Command, _ []string) error {
			ports, err := listPorts()
			if err != nil {
				return err
			}
			printPorts(os.Stdout, ports)
			return nil
		},
	}
	deviceCmd.AddCommand(listCmd)
	root.AddCommand(deviceCmd)

	// Ctrl+C while fluxengine is running: it gets the signal too, so just go.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "\nInterrupted\n")
		os.Exit(130)
	}()

	must(root.Execute())
}
