package terminal

import (
	"fmt"
	"io"
	"time"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line until stopped
type spinner struct {
	done    chan struct{}
	stopped chan struct{}
}

func startSpinner(w io.Writer, label string, interval time.Duration) *spinner {
	s := &spinner{
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		i := 0
		for {
			fmt.Fprintf(w, "\r%s %s", spinnerFrames[i], label)
			i = (i + 1) % len(spinnerFrames)

			select {
			case <-s.done:
				// Clear the spinner line
				fmt.Fprint(w, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()

	return s
}

// stop ends the animation and waits until the line is cleared
func (s *spinner) stop() {
	close(s.done)
	<-s.stopped
}
