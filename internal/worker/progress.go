package worker

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const progressBarWidth = 24

// Progress renders a single-line progress bar for a batch conversion.
type Progress struct {
	start     time.Time
	out       io.Writer
	total     int
	completed int
	failed    int
	mu        sync.Mutex
	enabled   bool
}

// NewProgress creates a progress tracker writing to out when enabled.
func NewProgress(out io.Writer, total int, enabled bool) *Progress {
	return &Progress{
		start:   time.Now(),
		out:     out,
		total:   total,
		enabled: enabled && out != nil,
	}
}

// Callback returns a ProgressFunc suitable for Config.OnProgress.
func (p *Progress) Callback() ProgressFunc {
	return p.Update
}

// Update records the completion counts and redraws the bar.
func (p *Progress) Update(completed, total, failed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completed, p.total, p.failed = completed, total, failed
	if p.enabled {
		fmt.Fprint(p.out, p.lineLocked())
	}
}

// Done finishes the bar with a newline.
func (p *Progress) Done() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled {
		fmt.Fprintln(p.out, p.lineLocked())
	}
}

// Summary describes the finished batch.
func (p *Progress) Summary() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return fmt.Sprintf("Converted %d/%d colors (%d failed) in %s",
		p.completed-p.failed, p.total, p.failed, time.Since(p.start).Round(time.Millisecond))
}

func (p *Progress) lineLocked() string {
	filled := 0
	if p.total > 0 {
		filled = p.completed * progressBarWidth / p.total
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)

	line := fmt.Sprintf("\r[%s] %d/%d colors", bar, p.completed, p.total)
	if p.failed > 0 {
		line += fmt.Sprintf(" (%d failed)", p.failed)
	}
	return line
}
