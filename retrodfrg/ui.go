// Package retrodfrg is a full-screen terminal dashboard for a floppy probe
// run. It shows the probes as phases, recent log lines and a hex dump of
// the last track read, and doubles as the run's probe.Sink.
package retrodfrg

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// ErrInterrupted is returned when the user asks to stop.
var ErrInterrupted = errors.New("interrupted")

// maxLogLines is how many log lines are kept for the status block.
const maxLogLines = 64

// UI renders probe progress on a tcell screen.
type UI struct {
	s        tcell.Screen
	stopChan chan struct{}
	once     sync.Once

	mu sync.Mutex

	// Verbose shows debug lines in the status block.
	Verbose bool

	title        string
	phases       []string
	phaseDoneMap map[string]bool
	current      string
	summaryLines []string
	legendLines  []string
	logLines     []string
	dumpLines    []string
	result       string
}

// NewUI initializes the screen and starts the key handler.
func NewUI() (*UI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return NewScreenUI(s), nil
}

// NewScreenUI builds the dashboard on a screen that is already initialized.
func NewScreenUI(s tcell.Screen) *UI {
	s.DisableMouse()
	u := &UI{
		s:            s,
		stopChan:     make(chan struct{}),
		phaseDoneMap: make(map[string]bool),
	}
	go u.eventLoop()
	return u
}

// Close restores the terminal. It is safe to call more than once.
func (u *UI) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.s == nil {
		return
	}
	u.s.Fini()
	u.s = nil
}

// RequestStop signals that the user wants out. It can be called many times.
func (u *UI) RequestStop() {
	u.once.Do(func() {
		close(u.stopChan)
		u.mu.Lock()
		if u.s != nil {
			_ = u.s.PostEvent(tcell.NewEventInterrupt(nil))
		}
		u.mu.Unlock()
	})
}

// Done is closed once a stop has been requested.
func (u *UI) Done() <-chan struct{} { return u.stopChan }

// IsStopped reports whether a stop has been requested.
func (u *UI) IsStopped() bool {
	select {
	case <-u.stopChan:
		return true
	default:
		return false
	}
}

func putStr(s tcell.Screen, x, y int, str string, style tcell.Style) {
	w, _ := s.Size()
	for i, r := range []rune(str) {
		pos := x + i
		if pos >= w {
			break
		}
		s.SetContent(pos, y, r, nil, style)
	}
}

func sectionBar(s tcell.Screen, y, w int, name string) {
	putStr(s, 0, y, strings.Repeat("─", w), tcell.StyleDefault)
	putStr(s, 2, y, " "+name+" ", tcell.StyleDefault)
}

// LayoutAndDraw redraws everything from the current state.
func (u *UI) LayoutAndDraw() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.s == nil {
		return
	}
	s := u.s
	s.Clear()
	w, h := s.Size()
	y := 0

	if u.title != "" {
		putStr(s, 0, y, strings.Repeat("═", w), tcell.StyleDefault)
		putStr(s, (w-len(u.title))/2, y, u.title, tcell.StyleDefault.Bold(true))
		y++
	}
	for _, line := range u.summaryLines {
		if y >= h {
			break
		}
		putStr(s, 0, y, line, tcell.StyleDefault)
		y++
	}

	if len(u.phases) > 0 && y < h {
		sectionBar(s, y, w, "Probes")
		y++
		var b strings.Builder
		for i, p := range u.phases {
			if i > 0 {
				b.WriteByte(' ')
			}
			mark := ' '
			switch {
			case u.phaseDoneMap[strings.ToLower(p)]:
				mark = '✓'
			case strings.EqualFold(p, u.current):
				mark = '»'
			}
			fmt.Fprintf(&b, "[%c]%s", mark, p)
		}
		putStr(s, 0, y, b.String(), tcell.StyleDefault)
		y++
	}

	if u.result != "" && y < h {
		sectionBar(s, y, w, "Result")
		y++
		putStr(s, 0, y, u.result, tcell.StyleDefault.Bold(true))
		y++
	}

	// Split what is left between the dump and the log, leaving the legend.
	rest := h - y - len(u.legendLines)
	dumpRows, logRows := rest/2, rest-rest/2
	y = u.drawTail(y, w, dumpRows, "Track data", u.dumpLines, false)
	y = u.drawTail(y, w, logRows, "Log", u.logLines, true)

	for _, line := range u.legendLines {
		if y >= h {
			break
		}
		putStr(s, 0, y, line, tcell.StyleDefault.Dim(true))
		y++
	}
	s.Show()
}

// drawTail draws a titled block of at most rows lines. With tail set the
// last lines are shown, otherwise the first ones.
func (u *UI) drawTail(y, w, rows int, name string, lines []string, tail bool) int {
	if rows < 2 {
		return y
	}
	sectionBar(u.s, y, w, name)
	y++
	rows--
	if len(lines) > rows {
		if tail {
			lines = lines[len(lines)-rows:]
		} else {
			lines = lines[:rows]
		}
	}
	for _, line := range lines {
		putStr(u.s, 0, y, line, tcell.StyleDefault)
		y++
	}
	return y + rows - len(lines)
}

// SetTitle sets the title line.
func (u *UI) SetTitle(t string) {
	u.mu.Lock()
	u.title = t
	u.mu.Unlock()
}

// SetSummaryLines sets the lines shown under the title.
func (u *UI) SetSummaryLines(lines []string) {
	u.mu.Lock()
	u.summaryLines = append([]string(nil), lines...)
	u.mu.Unlock()
}

// SetLegend sets the bottom lines.
func (u *UI) SetLegend(lines []string) {
	u.mu.Lock()
	u.legendLines = append([]string(nil), lines...)
	u.mu.Unlock()
}

// SetPhases sets the probe names shown in the phase line.
func (u *UI) SetPhases(labels []string) {
	u.mu.Lock()
	u.phases = append([]string(nil), labels...)
	u.mu.Unlock()
}

// StartPhase marks p as running. Names are case-insensitive.
func (u *UI) StartPhase(p string) {
	u.mu.Lock()
	u.current = p
	u.mu.Unlock()
}

// SetPhaseDone marks p as finished.
func (u *UI) SetPhaseDone(p string) {
	u.mu.Lock()
	u.phaseDoneMap[strings.ToLower(p)] = true
	if strings.EqualFold(p, u.current) {
		u.current = ""
	}
	u.mu.Unlock()
}

// SetResult shows the final verdict line.
func (u *UI) SetResult(r string) {
	u.mu.Lock()
	u.result = r
	u.mu.Unlock()
}

func (u *UI) eventLoop() {
	for {
		u.mu.Lock()
		s := u.s
		u.mu.Unlock()
		if s == nil {
			return
		}
		switch ev := s.PollEvent().(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyEscape:
				u.RequestStop()
			case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
				u.RequestStop()
			}
		case *tcell.EventResize:
			s.Sync()
			u.LayoutAndDraw()
		case *tcell.EventInterrupt, nil:
			return
		}
	}
}
