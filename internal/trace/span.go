package trace

import (
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// eventSeq orders emitted events; spanSeq hands out span IDs. Both are shared
// by every tracer in the process so batch workers never reuse a number.
var eventSeq, spanSeq atomic.Uint64

// NextSeq returns the next event sequence number.
func NextSeq() uint64 { return eventSeq.Add(1) }

// NextSpanID returns a fresh span ID. Zero is never returned.
func NextSpanID() uint64 { return spanSeq.Add(1) }

// goroutineID reads the worker number from the "goroutine N [...]" header of
// runtime.Stack. It returns 0 if the header cannot be read.
func goroutineID() uint64 {
	var buf [64]byte
	header := string(buf[:runtime.Stack(buf[:], false)])
	fields := strings.Fields(strings.TrimPrefix(header, "goroutine "))
	if len(fields) == 0 {
		return 0
	}
	gid, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span brackets a command, a script or a statement with a begin and an end
// event. Spans the level filters out are inert: every method is a no-op and
// ID returns 0.
type Span struct {
	tracer  Tracer
	head    Event // scope, IDs and name shared by both events
	started time.Time
	extra   map[string]string
}

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	started := time.Now()
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{started: started}
	}
	s := &Span{
		tracer: t,
		head: Event{
			Scope:    scope,
			SpanID:   NextSpanID(),
			ParentID: parent,
			GID:      goroutineID(),
			Name:     name,
		},
		started: started,
	}
	s.emit(KindSpanBegin, started, "", nil)
	return s
}

func (s *Span) emit(kind Kind, at time.Time, detail string, extra map[string]string) {
	ev := s.head
	ev.Time, ev.Kind, ev.Detail, ev.Extra = at, kind, detail, extra
	s.tracer.Emit(&ev)
}

// Recording reports whether the span reaches a tracer. Callers use it to skip
// building expensive extras, such as the text of a huge value.
func (s *Span) Recording() bool {
	return s != nil && s.tracer != nil
}

// End emits the end event with detail and the collected extras, and returns
// how long the span was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	dur := time.Since(s.started)
	if s.Recording() {
		s.emit(KindSpanEnd, time.Now(), detail, s.extra)
	}
	return dur
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.Recording() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.head.SpanID
}

// Point emits an instant event inside parent, such as one arithmetic
// operation of a statement.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
