package trace

import (
	"sync/atomic"
	"time"
)

var globalSpans atomic.Uint64

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 {
	return globalSpans.Add(1)
}

// Span provides RAII-style span tracking.
type Span struct {
	tracer  Tracer
	id      uint64
	scope   Scope
	name    string
	started time.Time
}

// Begin starts a new span and emits a SpanBegin event.
func Begin(t Tracer, scope Scope, name string) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	id := NextSpanID()
	now := time.Now()
	t.Emit(Event{
		Seq:    NextSeq(),
		Time:   now,
		Kind:   KindSpanBegin,
		Scope:  scope,
		SpanID: id,
		Name:   name,
	})
	return &Span{tracer: t, id: id, scope: scope, name: name, started: now}
}

// End finishes the span and emits a SpanEnd event with the duration.
func (s *Span) End(note string) {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return
	}
	now := time.Now()
	s.tracer.Emit(Event{
		Seq:    NextSeq(),
		Time:   now,
		Kind:   KindSpanEnd,
		Scope:  s.scope,
		SpanID: s.id,
		Name:   s.name,
		Note:   note,
		Dur:    now.Sub(s.started),
	})
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, note string) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(Event{
		Seq:   NextSeq(),
		Time:  time.Now(),
		Kind:  KindPoint,
		Scope: scope,
		Name:  name,
		Note:  note,
	})
}
