package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bigfrac/internal/observ"
	"bigfrac/internal/version"
)

// errReported means the failure was already written next to the results.
var errReported = errors.New("failure already reported")

// session is the per-invocation state prepared by the root pre-run hook.
type session struct {
	conf         fileConfig
	confPath     string
	timer        *observ.Timer
	quiet        bool
	traceCleanup func(failed bool)
	profCleanup  func() error
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "bigfrac",
		Short:         "Exact big-integer and fraction calculator",
		Long:          "bigfrac evaluates arithmetic on arbitrary-precision integers and reduced fractions.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.prepare(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "print a timing summary to stderr")
	pf.String("config", "", "path to bigfrac.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit a heartbeat event at this interval (0 disables)")
	pf.String("cpu-profile", "", "write a CPU profile to this file")
	pf.String("mem-profile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	root.AddCommand(newEvalCmd(s))
	root.AddCommand(newReplCmd(s))
	root.AddCommand(newBatchCmd(s))
	root.AddCommand(newVersionCmd())
	return root
}

// prepare loads configuration, applies colour and starts tracing.
func (s *session) prepare(cmd *cobra.Command) error {
	flags := cmd.Flags()

	explicit, err := flags.GetString("config")
	if err != nil {
		return err
	}
	s.conf, s.confPath, err = discoverConfig(explicit, ".")
	if err != nil {
		return err
	}

	colorValue := stringSetting(cmd, "color", s.conf.Output.Color)
	mode, err := readColorMode(colorValue)
	if err != nil {
		return err
	}
	color.NoColor = !mode.enabled(os.Stdout)

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return err
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return err
	}
	if timings {
		s.timer = observ.NewTimer()
	}

	if s.profCleanup, err = setupProfiling(cmd); err != nil {
		return err
	}
	s.traceCleanup, err = setupTracing(cmd, s.conf.Trace)
	return err
}

// finish runs after the command, successful or not.
func (s *session) finish(stderr io.Writer, failed bool) {
	if s.traceCleanup != nil {
		s.traceCleanup(failed)
	}
	if s.profCleanup != nil {
		if err := s.profCleanup(); err != nil {
			fmt.Fprintf(stderr, "profile: %v\n", err)
		}
	}
	if s.timer != nil {
		fmt.Fprint(stderr, s.timer.Summary())
	}
}

func main() {
	s := &session{}
	root := newRootCmd(s)
	err := root.Execute()
	s.finish(os.Stderr, err != nil)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		}
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int.
}
