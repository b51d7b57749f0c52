package ui

import (
	"errors"
	"strings"
	"testing"

	"bigfrac/internal/batch"
)

func feed(t *testing.T, m *progressModel, events ...batch.Event) {
	t.Helper()
	for _, ev := range events {
		next, _ := m.Update(eventMsg(ev))
		m = next.(*progressModel)
	}
}

func TestProgressModelLifecycle(t *testing.T) {
	files := []string{"a.calc", "b.calc"}
	m := NewProgressModel("evaluating", files, nil).(*progressModel)

	feed(t, m,
		batch.Event{File: "a.calc", Stage: batch.StageRead, Status: batch.StatusWorking},
	)
	if m.items[0].status != "reading" {
		t.Fatalf("status = %q, want reading", m.items[0].status)
	}

	feed(t, m,
		batch.Event{File: "a.calc", Stage: batch.StageRead, Status: batch.StatusDone},
	)
	if m.items[0].status != "reading" {
		t.Fatalf("finishing read changed status to %q", m.items[0].status)
	}

	feed(t, m,
		batch.Event{File: "a.calc", Stage: batch.StageEval, Status: batch.StatusDone},
		batch.Event{File: "b.calc", Stage: batch.StageParse, Status: batch.StatusError, Err: errors.New("b.calc:1:4: boom")},
		batch.Event{File: "unknown.calc", Stage: batch.StageRead, Status: batch.StatusWorking},
	)
	if got := m.percent(); got != 1 {
		t.Fatalf("percent = %v, want 1", got)
	}

	view := m.View()
	for _, want := range []string{"evaluating 2/2", "a.calc", "done", "error", "boom"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	next, cmd := m.Update(doneMsg{})
	if cmd == nil || !next.(*progressModel).done {
		t.Fatal("doneMsg must finish the model")
	}
	if !strings.Contains(m.View(), "done: evaluating") {
		t.Fatalf("final view:\n%s", m.View())
	}
}

func TestProgressModelEmpty(t *testing.T) {
	m := NewProgressModel("x", nil, nil)
	if m.View() != "" {
		t.Fatal("empty model must render nothing")
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  batch.Stage
		status batch.Status
		want   string
	}{
		{batch.StageRead, batch.StatusQueued, "queued"},
		{batch.StageRead, batch.StatusWorking, "reading"},
		{batch.StageParse, batch.StatusWorking, "parsing"},
		{batch.StageEval, batch.StatusWorking, "evaluating"},
		{batch.StageParse, batch.StatusDone, ""},
		{batch.StageEval, batch.StatusDone, "done"},
		{batch.StageRead, batch.StatusError, "error"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Fatalf("truncate with width 0 = %q", got)
	}
}
