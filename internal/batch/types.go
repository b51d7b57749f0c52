package batch

import (
	"time"

	"bigfrac/internal/expr"
)

// Stage describes a step of processing one script.
type Stage string

const (
	StageRead  Stage = "read"
	StageParse Stage = "parse"
	StageEval  Stage = "eval"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Implementations must be goroutine-safe.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FileResult is the outcome of one script. Err holds the first read, parse
// or evaluation failure; Results holds every statement printed before it.
type FileResult struct {
	Path    string
	Results []expr.Result
	Err     error
	Elapsed time.Duration
}
