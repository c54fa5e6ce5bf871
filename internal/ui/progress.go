package ui

import (
	"fmt"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Progress displays an in-place counter for long batch runs. It stays silent
// when stdout is not a terminal, so piped output never sees control codes.
type Progress struct {
	message string
	total   int
	current int
	mu      sync.Mutex
}

// NewProgress creates a progress indicator over total items.
func NewProgress(message string, total int) *Progress {
	return &Progress{message: message, total: total}
}

// Update sets the current position and redraws the line.
func (p *Progress) Update(current int) {
	p.mu.Lock()
	p.current = current
	p.mu.Unlock()
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return
	}
	fmt.Printf("\r%s %s", p.message, Muted.Render(fmt.Sprintf("(%d/%d)", current, p.total)))
}

// Done clears the progress line.
func (p *Progress) Done() {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print("\r\033[K")
	}
}
