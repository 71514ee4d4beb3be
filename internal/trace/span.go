package trace

import "time"

// Span provides RAII-style Begin/End tracking, grounded on the teacher's
// Span type (minus its goroutine-id bookkeeping: this core's sema pass
// is single-threaded per spec.md §5, so there is no concurrent span tree
// to disambiguate).
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	scope    Scope
	name     string
	started  time.Time
}

// Begin opens a span at scope under parent (0 for a root span), emitting
// a SpanBegin event unless the tracer is disabled or the scope is too
// fine-grained for its current level.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	id := NextSpanID()
	now := time.Now()
	t.Emit(&Event{
		Time: now, Seq: NextSeq(), Kind: KindSpanBegin,
		Scope: scope, SpanID: id, ParentID: parent, Name: name,
	})
	return &Span{tracer: t, id: id, parentID: parent, scope: scope, name: name, started: now}
}

// End emits the matching SpanEnd event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}
	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time: time.Now(), Seq: NextSeq(), Kind: KindSpanEnd,
		Scope: s.scope, SpanID: s.id, ParentID: s.parentID, Name: s.name, Detail: detail,
	})
	return dur
}

// ID returns the span's identifier, or 0 for a nil/no-op span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
