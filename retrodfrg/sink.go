package retrodfrg

import (
	"fmt"
	"time"

	"floppyprobe/hexdump"
)

// The UI is a probe.Sink: log lines go to the status block and dumps replace
// the track data pane.

func (u *UI) addLog(level, format string, args ...any) {
	line := level + ": " + fmt.Sprintf(format, args...)
	u.mu.Lock()
	u.logLines = append(u.logLines, line)
	if len(u.logLines) > maxLogLines {
		u.logLines = u.logLines[len(u.logLines)-maxLogLines:]
	}
	u.mu.Unlock()
	u.LayoutAndDraw()
}

// Debugf logs a debug line when Verbose is set.
func (u *UI) Debugf(format string, args ...any) {
	if !u.Verbose {
		return
	}
	u.addLog("DEBUG", format, args...)
}

// Warnf logs a warning line.
func (u *UI) Warnf(format string, args ...any) {
	u.addLog("WARNING", format, args...)
}

// Errorf logs an error line.
func (u *UI) Errorf(format string, args ...any) {
	u.addLog("ERROR", format, args...)
}

// Dump shows the first limit bytes of data in the track data pane when
// Verbose is set.
func (u *UI) Dump(data []byte, limit int) {
	if !u.Verbose {
		return
	}
	lines := hexdump.Lines(data, limit)
	u.mu.Lock()
	u.dumpLines = lines
	u.mu.Unlock()
	u.LayoutAndDraw()
}

// WaitWithStop keeps the final screen up for d, or until the user quits.
func WaitWithStop(u *UI, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-u.stopChan:
		return ErrInterrupted
	case <-timer.C:
		return nil
	}
}
