// Package linear provides a line-oriented progress renderer.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/margo/internal/core/ports"
	"go.trai.ch/margo/internal/ui/output"
	"go.trai.ch/margo/internal/ui/style"
)

// Renderer implements ports.Renderer. It prints one line when the plan is known and one
// line per finished crate. Colors are used only when writing to a terminal.
type Renderer struct {
	out *termenv.Output

	mu    sync.Mutex
	tasks map[string]taskState
}

type taskState struct {
	name      string
	startTime time.Time
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer creates a Renderer writing to w, or to stderr when w is nil.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	return &Renderer{
		out:   output.New(w),
		tasks: make(map[string]taskState),
	}
}

// OnPlan prints how many crates will be fetched.
func (r *Renderer) OnPlan(cached, pending []string) {
	if len(pending) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	icon := r.out.String(style.Arrow).Foreground(termenv.RGBColor(string(style.Iris))).String()
	_, _ = fmt.Fprintf(r.out, "%s fetching %d crate(s), %d already cached\n", icon, len(pending), len(cached))
}

// OnTaskStart remembers when work on a crate began.
func (r *Renderer) OnTaskStart(spanID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[spanID] = taskState{name: name, startTime: startTime}
}

// OnTaskComplete prints the outcome of a crate.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)

	if err != nil {
		icon := r.out.String(style.Cross).Foreground(termenv.RGBColor(string(style.Red))).String()
		_, _ = fmt.Fprintf(r.out, "%s %s failed: %v\n", icon, task.name, err)
		return
	}

	elapsed := endTime.Sub(task.startTime).Round(time.Millisecond)
	icon := r.out.String(style.Check).Foreground(termenv.RGBColor(string(style.Green))).String()
	_, _ = fmt.Fprintf(r.out, "%s %s fetched in %v\n", icon, task.name, elapsed)
}
