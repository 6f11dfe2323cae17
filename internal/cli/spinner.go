package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner is a progress indicator for operations that block on cargo or the
// network. It draws to stderr so stdout stays clean for piped output, and
// stops on its own when the context is cancelled.
type spinner struct {
	message  string
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
}

// newSpinner creates a spinner bound to ctx. Call Start to begin drawing.
func newSpinner(ctx context.Context, message string) *spinner {
	spinCtx, cancel := context.WithCancel(ctx)
	return &spinner{
		message: message,
		ctx:     spinCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *spinner) Start() {
	go s.loop()
}

func (s *spinner) loop() {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-s.done:
			return
		case <-ticker.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

// Stop halts the animation and clears the line. Safe to call more than
// once, and before Start.
func (s *spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		close(s.done)
	})
	s.clearLine()
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
