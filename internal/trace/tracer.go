// Package trace implements the compiler's phase-boundary tracer, the
// ambient counterpart to diag for non-diagnostic observability: Begin/End
// spans around internal/sema.Check's pipeline stages, toggled by the CLI's
// --verbose flag. Grounded on the teacher's internal/trace package's
// Tracer/Level/Event/Span shape, trimmed to what a single-module
// synchronous compiler (spec.md §5) actually needs: no ring buffer, no
// multi-tracer fan-out, no heartbeat, no Chrome/NDJSON export — those
// exist in the teacher to support its concurrent, long-running driver and
// have no component in this core to drive them (see DESIGN.md).
package trace

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Tracer receives trace events. Emit must be safe to call even when the
// tracer is disabled; callers are expected to guard with Enabled() first
// via Begin, which returns a no-op Span when tracing is off.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	Enabled() bool
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)     {}
func (nopTracer) Level() Level    { return LevelOff }
func (nopTracer) Enabled() bool   { return false }

// Nop is the package-level singleton used whenever tracing is disabled.
var Nop Tracer = nopTracer{}

// StreamTracer writes one line per event to an io.Writer as it happens,
// the way the teacher's StreamTracer does for its "stream" storage mode
// — the only mode this core needs, since it never buffers to a ring.
type StreamTracer struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

// NewStreamTracer returns a Tracer that writes text lines to w at or
// below level. A LevelOff tracer is equivalent to Nop.
func NewStreamTracer(w io.Writer, level Level) Tracer {
	if level == LevelOff {
		return Nop
	}
	return &StreamTracer{w: w, level: level}
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return true }

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	line := fmt.Sprintf("[%s] %s %s#%d", ev.Scope, ev.Kind, ev.Name, ev.SpanID)
	if ev.Detail != "" {
		line += " " + ev.Detail
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, line)
}

var globalSeq, globalSpans uint64

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return atomic.AddUint64(&globalSeq, 1) }

// NextSpanID returns a unique span identifier.
func NextSpanID() uint64 { return atomic.AddUint64(&globalSpans, 1) }
