package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat ticks into the tracer while a long command runs. A stretch of
// beats with no stmt span ending between them points at one statement that is
// still grinding, usually a large power or a long division.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	started  time.Time
	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartHeartbeat begins ticking every interval. It returns nil when the
// tracer is off or the interval is not positive; Stop on nil is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer:   tracer,
		interval: interval,
		started:  time.Now(),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer close(h.done)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	gid := goroutineID()
	for beat := 1; ; beat++ {
		select {
		case <-h.quit:
			return
		case now := <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    gid,
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d after %s", beat, now.Sub(h.started).Round(time.Millisecond)),
			})
		}
	}
}

// Stop ends the ticking and waits until the last beat has been emitted.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.stopOnce.Do(func() { close(h.quit) })
	<-h.done
}
