// Package spinner draws a single-line progress indicator on a terminal.
package spinner

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-runewidth"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Interval is the time between two frames.
const Interval = 80 * time.Millisecond

// Spinner animates a message on one line until stopped.
type Spinner struct {
	w io.Writer

	mu      sync.Mutex
	message string
	width   int

	done     chan struct{}
	cleared  chan struct{}
	stopOnce sync.Once
}

// Start displays an animated spinner with message on w.
// Call Stop to clear the line.
func Start(w io.Writer, message string) *Spinner {
	s := &Spinner{
		w:       w,
		done:    make(chan struct{}),
		cleared: make(chan struct{}),
	}
	s.Update(message)
	go s.run()
	return s
}

// Update replaces the message. It is safe to call from several goroutines.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	if w := runewidth.StringWidth(message) + 2; w > s.width {
		s.width = w
	}
}

// Stop clears the line and returns once the spinner has stopped drawing.
// Further calls do nothing.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	<-s.cleared
}

func (s *Spinner) run() {
	ticker := time.NewTicker(Interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.done:
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width)) //nolint:errcheck
			s.mu.Unlock()
			close(s.cleared)
			return
		case <-ticker.C:
			s.mu.Lock()
			// Pad to the widest message so a shorter one leaves no residue.
			fmt.Fprintf(s.w, "\r%s", runewidth.FillRight(frames[i%len(frames)]+" "+s.message, s.width)) //nolint:errcheck
			s.mu.Unlock()
		}
	}
}
