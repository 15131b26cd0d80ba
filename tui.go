package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"floppyprobe/probe"
	"floppyprobe/retrodfrg"
)

// phasedProber reports start and end of a probe to the dashboard.
type phasedProber struct {
	probe.Prober
	ui *retrodfrg.UI
}

func (p phasedProber) Probe(src probe.TrackSource, m probe.Media, log probe.Sink) probe.Verdict {
	p.ui.StartPhase(p.Name())
	p.ui.LayoutAndDraw()
	v := p.Prober.Probe(src, m, log)
	p.ui.SetPhaseDone(p.Name())
	p.ui.LayoutAndDraw()
	return v
}

func driveLetter(n int) string {
	if n == 1 {
		return "B"
	}
	return "A"
}

// dashboardSink sends everything to the dashboard and also keeps warnings
// and errors, which would otherwise vanish with the screen.
type dashboardSink struct {
	*retrodfrg.UI
	buf  bytes.Buffer
	held *stderrSink
}

func newDashboardSink(ui *retrodfrg.UI) *dashboardSink {
	d := &dashboardSink{UI: ui}
	d.held = newStderrSink(&d.buf, false)
	return d
}

func (d *dashboardSink) Warnf(format string, args ...any) {
	d.UI.Warnf(format, args...)
	d.held.Warnf(format, args...)
}

func (d *dashboardSink) Errorf(format string, args ...any) {
	d.UI.Errorf(format, args...)
	d.held.Errorf(format, args...)
}

// flush writes the kept lines to w and forgets them.
func (d *dashboardSink) flush(w io.Writer) {
	d.held.mu.Lock()
	defer d.held.mu.Unlock()
	_, _ = d.buf.WriteTo(w)
}

// classifyWithUI runs the classifier with the dashboard as its sink. The
// screen is closed before returning so the caller can print normally.
func classifyWithUI(o probeOptions, m probe.Media) (probe.Result, error) {
	ui, err := retrodfrg.NewUI()
	if err != nil {
		return probe.Result{}, fmt.Errorf("ui init: %w", err)
	}
	return runDashboard(ui, o, m, os.Stderr, 2*time.Second), nil
}

// runDashboard drives one classification on ui, keeps the final screen up
// for hold, then closes ui and replays warnings and errors onto stderr.
func runDashboard(ui *retrodfrg.UI, o probeOptions, m probe.Media, stderr io.Writer, hold time.Duration) probe.Result {
	log := newDashboardSink(ui)
	defer func() {
		ui.Close()
		log.flush(stderr)
	}()
	ui.Verbose = o.Debug

	// Quitting mid-probe abandons the run; on the final screen it only
	// skips the wait.
	finished := make(chan struct{})
	go func() {
		select {
		case <-ui.Done():
			ui.Close()
			log.flush(stderr)
			fmt.Fprintf(stderr, "\nInterrupted\n")
			os.Exit(130)
		case <-finished:
		}
	}()

	c := probe.NewClassifier(trackSource(o, log), log)
	var names []string
	for i, p := range c.Probers {
		names = append(names, p.Name())
		c.Probers[i] = phasedProber{Prober: p, ui: ui}
	}

	device := m.Device
	if device == "" {
		device = "auto"
	}
	source := "fluxengine"
	if o.ReplayDir != "" {
		source = "replay " + o.ReplayDir
	}
	ui.SetTitle(fmt.Sprintf(" PROBE – DRIVE %s:  %s\"  %d TRACK ", driveLetter(m.Drive), m.Size, m.Tracks))
	ui.SetSummaryLines([]string{
		fmt.Sprintf("Device: %-20s  Source: %s", device, source),
	})
	ui.SetPhases(names)
	ui.SetLegend([]string{"Q to quit"})
	ui.LayoutAndDraw()

	r := c.Result(m)
	close(finished)
	if r.Identified() {
		ui.SetResult(r.Verdict.String())
	} else {
		ui.SetResult("Not a common format or it is corrupt")
	}
	ui.LayoutAndDraw()
	_ = retrodfrg.WaitWithStop(ui, hold)
	return r
}
