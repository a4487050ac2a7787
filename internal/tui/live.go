package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/san-kum/algotrace/internal/playback"
	"github.com/san-kum/algotrace/internal/viz"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer redraws the current step on every engine change, without
// taking over the keyboard. Frames closer together than the frame rate are
// skipped, except the one that completes the trace.
type LiveRenderer struct {
	w         io.Writer
	styles    viz.Styles
	frame     viz.Frame
	frameRate int
	now       func() time.Time

	mu        sync.Mutex
	lastFrame time.Time
	frames    int
}

func NewLiveRenderer(w io.Writer, styles viz.Styles, frame viz.Frame, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		w:         w,
		styles:    styles,
		frame:     frame,
		frameRate: frameRate,
		now:       time.Now,
	}
}

// Observer returns the playback observer that feeds the renderer.
func (r *LiveRenderer) Observer() playback.Observer {
	return playback.ObserverFuncs{Change: r.OnChange}
}

func (r *LiveRenderer) OnChange(s playback.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	final := s.Animation == playback.Completed
	if !final && !r.lastFrame.IsZero() && now.Sub(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = now
	r.frames++
	r.render(s)
}

// Frames reports how many frames were drawn.
func (r *LiveRenderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *LiveRenderer) render(s playback.Snapshot) {
	st := r.styles
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("%s  %s  %s\n",
		st.Title.Render(s.Algorithm),
		st.Muted.Render(s.Animation.String()),
		st.Muted.Render(fmt.Sprintf("%d/%d", s.Index+1, s.Total))))
	b.WriteString(st.ProgressBar(s.Progress/100, 40) + "\n\n")
	b.WriteString(st.Value.Render(s.Step.ID) + "  " + st.Text.Render(s.Step.Description) + "\n\n")
	b.WriteString(st.Step(s.Step, r.frame) + "\n")
	fmt.Fprint(r.w, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.w, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.w, showCursor) }
