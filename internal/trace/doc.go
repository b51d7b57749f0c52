// Package trace records what the calculator is doing while it evaluates.
//
// Tracing is the structured log of bigfrac: every command, script, statement
// and arithmetic operation can be reported as an Event to a Tracer.
//
//	bigfrac eval --trace=- --trace-level=debug '2/3 + 1/6'
//
// Tracers:
//
//   - Nop discards everything and is returned when tracing is off.
//   - StreamTracer writes each event as it happens (text or NDJSON).
//   - RingTracer keeps the newest events in memory for a dump after a failure.
//   - MultiTracer fans out to several tracers.
//
// Levels gate scopes: phase shows driver and script spans, detail adds
// statements, debug adds individual operations. Error records phases into a
// ring tracer only, for the dump printed when a command fails.
//
// A tracer travels with a context:
//
//	ctx = trace.WithTracer(ctx, t)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeScript, name, 0)
//	defer span.End("")
package trace
