package trace

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Tracer is the main interface for emitting trace events.
type Tracer interface {
	// Emit records a trace event. Must be goroutine-safe.
	Emit(ev Event)

	// Flush ensures all buffered events are written.
	Flush() error

	// Close flushes and releases resources.
	Close() error

	// Level returns the current tracing level.
	Level() Level

	// Enabled returns true if tracing is active (Level > LevelOff).
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Output     io.Writer // if nil, use OutputPath
	OutputPath string    // "-" for stderr
}

// New creates a Tracer based on Config.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	w := cfg.Output
	var closer io.Closer
	if w == nil {
		switch cfg.OutputPath {
		case "", "-":
			w = os.Stderr
		default:
			// #nosec G304 -- path comes from the --trace flag
			f, err := os.Create(cfg.OutputPath)
			if err != nil {
				return nil, fmt.Errorf("failed to open trace output %q: %w", cfg.OutputPath, err)
			}
			w = f
			closer = f
		}
	}
	return &StreamTracer{level: cfg.Level, w: w, closer: closer}, nil
}

// StreamTracer writes each event immediately to its output.
type StreamTracer struct {
	mu     sync.Mutex
	level  Level
	w      io.Writer
	closer io.Closer
}

func (t *StreamTracer) Emit(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch ev.Kind {
	case KindSpanEnd:
		fmt.Fprintf(t.w, "%s %-9s %-6s %s dur=%s %s\n",
			ev.Time.Format(time.TimeOnly), ev.Scope, ev.Kind, ev.Name, ev.Dur, ev.Note)
	default:
		fmt.Fprintf(t.w, "%s %-9s %-6s %s %s\n",
			ev.Time.Format(time.TimeOnly), ev.Scope, ev.Kind, ev.Name, ev.Note)
	}
}

func (t *StreamTracer) Flush() error { return nil }

func (t *StreamTracer) Close() error {
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

// nopTracer is a no-op implementation for zero overhead when tracing is
// disabled.
type nopTracer struct{}

func (nopTracer) Emit(Event)    {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop is the package-level singleton nop tracer.
var Nop Tracer = nopTracer{}

var globalSeq atomic.Uint64

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return globalSeq.Add(1)
}
