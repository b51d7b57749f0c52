// Package batch evaluates many calculator scripts concurrently.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"bigfrac/internal/expr"
	"bigfrac/internal/observ"
	"bigfrac/internal/trace"
)

// ScriptExt is the extension picked up when a directory is expanded.
const ScriptExt = ".calc"

// Options configure Run.
type Options struct {
	Jobs  int       // worker limit, <= 0 means GOMAXPROCS
	Mode  expr.Mode // number model for every script
	Sink  Sink      // optional progress sink
	Timer *observ.Timer

	// ReadFile defaults to os.ReadFile.
	ReadFile func(string) ([]byte, error)
}

// ExpandPaths replaces every directory argument with the sorted *.calc files
// beneath it. Plain file arguments are kept as given, in order.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			out = append(out, arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == ScriptExt {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", arg, err)
		}
		slices.Sort(found)
		out = append(out, found...)
	}
	return out, nil
}

// Run evaluates each file in its own Env. Results come back in input order.
// A failing script does not stop the others; the returned error is non-nil
// only when ctx is cancelled.
func Run(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	results := make([]FileResult, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	readFile := opts.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	tr := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	for _, p := range paths {
		emit(opts.Sink, Event{File: p, Stage: StageRead, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			span := trace.Begin(tr, trace.ScopeScript, path, parent)
			sctx := trace.WithSpan(gctx, span)

			started := time.Now()
			res := runOne(sctx, path, readFile, opts)
			res.Elapsed = time.Since(started)
			results[i] = res

			span.WithExtra("results", strconv.Itoa(len(res.Results)))
			if res.Err != nil {
				span.WithExtra("error", res.Err.Error())
			}
			span.End("")
			if opts.Timer != nil {
				opts.Timer.Add(path, res.Elapsed, statusNote(res))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func runOne(ctx context.Context, path string, readFile func(string) ([]byte, error), opts Options) FileResult {
	res := FileResult{Path: path}

	step := func(stage Stage, fn func() error) bool {
		emit(opts.Sink, Event{File: path, Stage: stage, Status: StatusWorking})
		start := time.Now()
		err := fn()
		ev := Event{File: path, Stage: stage, Status: StatusDone, Elapsed: time.Since(start)}
		if err != nil {
			ev.Status, ev.Err = StatusError, err
			res.Err = err
		}
		emit(opts.Sink, ev)
		return err == nil
	}

	var text []byte
	if !step(StageRead, func() error {
		var err error
		text, err = readFile(path)
		return err
	}) {
		return res
	}

	var prog *expr.Program
	if !step(StageParse, func() error {
		var err error
		prog, err = expr.Parse(expr.NewSource(path, text))
		return err
	}) {
		return res
	}

	step(StageEval, func() error {
		var err error
		res.Results, err = expr.NewEnv(opts.Mode).Eval(ctx, prog)
		return err
	})
	return res
}

func statusNote(res FileResult) string {
	if res.Err != nil {
		return "error"
	}
	return strconv.Itoa(len(res.Results)) + " results"
}

func emit(s Sink, ev Event) {
	if s != nil {
		s.OnEvent(ev)
	}
}
