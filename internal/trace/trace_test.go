package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"off", LevelOff, false},
		{"", LevelOff, false},
		{"ERROR", LevelError, false},
		{"phase", LevelPhase, false},
		{"Detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, true},
		{LevelError, ScopeStmt, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopeScript, true},
		{LevelPhase, ScopeStmt, false},
		{LevelDetail, ScopeStmt, true},
		{LevelDetail, ScopeOp, false},
		{LevelDebug, ScopeOp, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	span := Begin(tr, ScopeScript, "script", 0)
	stmt := Begin(tr, ScopeStmt, "stmt", span.ID())
	Point(tr, ScopeOp, "add", "1 + 2", stmt.ID()) // filtered at detail
	stmt.WithExtra("value", "3/1").WithExtra("mode", "fraction").End("")
	span.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ script") {
		t.Errorf("first line = %q, want span begin", lines[0])
	}
	if !strings.Contains(lines[2], "{mode=fraction, value=3/1}") {
		t.Errorf("extras not sorted: %q", lines[2])
	}
	if !strings.Contains(lines[3], "← script (ok)") {
		t.Errorf("last line = %q, want span end with detail", lines[3])
	}
	if strings.Contains(out, "add") {
		t.Errorf("op event leaked at detail level:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeOp, "mul", "4/9 * 3/2", 7)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid NDJSON %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "op" || got["name"] != "mul" {
		t.Fatalf("unexpected event: %v", got)
	}
	if got["parent_id"] != float64(7) {
		t.Fatalf("parent_id = %v, want 7", got["parent_id"])
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeOp, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snapshot[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
	for i := 1; i < len(snap); i++ {
		if snap[i].Seq <= snap[i-1].Seq {
			t.Errorf("sequence not increasing at %d", i)
		}
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Errorf("dump has %d lines, want 3", n)
	}
}

func TestMultiTracer(t *testing.T) {
	var buf bytes.Buffer
	stream := NewStreamTracer(&buf, LevelPhase, FormatText)
	ring := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, stream, ring)

	Begin(m, ScopeDriver, "eval", 0).End("")
	if m.Ring() != ring {
		t.Fatal("Ring() did not find the ring tracer")
	}
	if got := len(ring.Snapshot()); got != 2 {
		t.Fatalf("ring holds %d events, want 2", got)
	}
	if !strings.Contains(buf.String(), "eval") {
		t.Fatalf("stream missing events: %q", buf.String())
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNopAndInertSpans(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 {
		t.Fatalf("inert span has id %d", s.ID())
	}
	s.WithExtra("k", "v").End("")

	var nilSpan *Span
	if nilSpan.End("") != 0 || nilSpan.ID() != 0 {
		t.Fatal("nil span must be inert")
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("tracer at LevelOff must be disabled")
	}
}

func TestNewAutoFormat(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf, OutputPath: "run.ndjson"})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeDriver, "start", "", 0)
	if !strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("expected NDJSON output, got %q", buf.String())
	}
}

func TestContextPropagation(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx = WithTracer(ctx, r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatal("tracer not propagated")
	}
	span := Begin(r, ScopeScript, "s", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx) != span.ID() {
		t.Fatalf("CurrentSpan = %d, want %d", CurrentSpan(ctx), span.ID())
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestHeartbeat(t *testing.T) {
	var out lockedBuffer
	tr := NewStreamTracer(&out, LevelPhase, FormatText)
	hb := StartHeartbeat(tr, 5*time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "heartbeat") && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	hb.Stop()
	hb.Stop()
	if !strings.Contains(out.String(), "heartbeat") {
		t.Fatal("no heartbeat emitted")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat on a disabled tracer must be nil")
	}
}

func TestErrorLevelOnlyFillsRing(t *testing.T) {
	var buf bytes.Buffer
	stream := NewStreamTracer(&buf, LevelError, FormatText)
	ring := NewRingTracer(8, LevelError)
	m := NewMultiTracer(LevelError, stream, ring)

	Begin(m, ScopeScript, "a.calc", 0).End("")
	if buf.Len() != 0 {
		t.Fatalf("stream wrote at error level: %q", buf.String())
	}
	if got := len(ring.Snapshot()); got != 2 {
		t.Fatalf("ring holds %d events, want 2", got)
	}
}

func TestParseStorageMode(t *testing.T) {
	for in, want := range map[string]StorageMode{"stream": ModeStream, "RING": ModeRing, "Both": ModeBoth} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
		if got.String() != strings.ToLower(in) {
			t.Errorf("%v.String() = %q", got, got.String())
		}
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Error("ParseMode(tape) succeeded")
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		cfg  Config
		want Format
	}{
		{Config{OutputPath: "run.ndjson"}, FormatNDJSON},
		{Config{OutputPath: "RUN.JSONL"}, FormatNDJSON},
		{Config{OutputPath: "run.log"}, FormatText},
		{Config{}, FormatText},
		{Config{OutputPath: "run.ndjson", Format: FormatText}, FormatText},
	}
	for _, tt := range tests {
		if got := resolveFormat(tt.cfg); got != tt.want {
			t.Errorf("resolveFormat(%+v) = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}

func TestSpanRecording(t *testing.T) {
	ring := NewRingTracer(8, LevelDetail)
	if !Begin(ring, ScopeStmt, "stmt", 0).Recording() {
		t.Error("stmt span at detail level must record")
	}
	if Begin(ring, ScopeOp, "add", 0).Recording() {
		t.Error("op span at detail level must be inert")
	}
	if Begin(Nop, ScopeDriver, "x", 0).Recording() {
		t.Error("span on Nop must be inert")
	}
	var nilSpan *Span
	if nilSpan.Recording() {
		t.Error("nil span must be inert")
	}
}

func TestHeartbeatCountsBeats(t *testing.T) {
	ring := NewRingTracer(16, LevelPhase)
	hb := StartHeartbeat(ring, 2*time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) < 2 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}
	hb.Stop()

	events := ring.Snapshot()
	if len(events) < 2 {
		t.Fatalf("got %d heartbeats, want at least 2", len(events))
	}
	for i, ev := range events[:2] {
		if ev.Kind != KindHeartbeat || !strings.HasPrefix(ev.Detail, fmt.Sprintf("#%d after ", i+1)) {
			t.Errorf("beat %d = %+v", i, ev)
		}
	}
}
