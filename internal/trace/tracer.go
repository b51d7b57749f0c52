package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Tracer is the sink every span and point goes to. Batch workers share one
// tracer, so implementations must accept Emit from many goroutines.
type Tracer interface {
	// Emit records ev. The tracer may keep ev, so callers pass a fresh value.
	Emit(ev *Event)
	// Flush pushes buffered output to the underlying writer.
	Flush() error
	// Close flushes and releases the output. Closing stderr is never done.
	Close() error
	// Level is the verbosity the tracer was built with.
	Level() Level
	// Enabled is false only for tracers at LevelOff, such as Nop.
	Enabled() bool
}

// StorageMode says where events go: straight to the output, into the
// in-memory ring that is dumped when a command fails, or both.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing
	ModeBoth
)

var storageModeNames = map[StorageMode]string{
	ModeStream: "stream",
	ModeRing:   "ring",
	ModeBoth:   "both",
}

func (m StorageMode) String() string {
	if name, ok := storageModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseMode reads a --trace-mode value, ignoring case.
func ParseMode(s string) (StorageMode, error) {
	for mode, name := range storageModeNames {
		if strings.EqualFold(s, name) {
			return mode, nil
		}
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

const defaultRingSize = 4096

// Config describes the tracer a bigfrac command runs with.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format        // FormatAuto picks NDJSON for .ndjson and .jsonl paths
	Output     io.Writer     // overrides OutputPath when set
	OutputPath string        // trace file; "" or "-" means stderr
	RingSize   int           // events kept in ring mode, default 4096
	Heartbeat  time.Duration // read by the caller that starts the Heartbeat
}

// New builds the tracer for cfg. LevelOff yields Nop without touching the
// output.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}

	stream := func() (Tracer, error) {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		return NewStreamTracer(w, cfg.Level, resolveFormat(cfg)), nil
	}

	switch cfg.Mode {
	case ModeStream:
		return stream()
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeBoth:
		s, err := stream()
		if err != nil {
			return nil, err
		}
		return NewMultiTracer(cfg.Level, s, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
}

func resolveFormat(cfg Config) Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	switch strings.ToLower(filepath.Ext(cfg.OutputPath)) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	default:
		return FormatText
	}
}

// stderrWriter hides os.Stderr's Close from StreamTracer.Close.
type stderrWriter struct{}

func (stderrWriter) Write(p []byte) (int, error) { return os.Stderr.Write(p) }

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return stderrWriter{}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
