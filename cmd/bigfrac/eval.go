package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bigfrac/internal/expr"
	"bigfrac/internal/render"
	"bigfrac/internal/trace"
)

func newEvalCmd(s *session) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "eval [expr...]",
		Short: "Evaluate expressions or a script",
		Long: `Evaluate expressions given as arguments, a script file (-f), or standard input.
Each argument is one line of the script, so variables carry over between them:

  bigfrac eval 'x = 4/9' 'x * 3/2'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, text, err := evalInput(cmd.InOrStdin(), file, args)
			if err != nil {
				return err
			}
			mode, err := modeSetting(cmd, s.conf)
			if err != nil {
				return err
			}
			format, err := formatSetting(cmd, s.conf)
			if err != nil {
				return err
			}
			return runEval(cmd, s, name, text, mode, format, len(args) != 1)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "script file to evaluate (- for stdin)")
	cmd.Flags().String("mode", "fraction", "number model (fraction|int)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	return cmd
}

// evalInput picks the script source: -f, then arguments, then stdin.
func evalInput(stdin io.Reader, file string, args []string) (name, text string, err error) {
	switch {
	case file != "" && len(args) > 0:
		return "", "", fmt.Errorf("use either -f or expression arguments, not both")
	case file == "-":
		data, err := io.ReadAll(stdin)
		return "<stdin>", string(data), err
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", err
		}
		return file, string(data), nil
	case len(args) > 0:
		return "<args>", strings.Join(args, "\n"), nil
	default:
		data, err := io.ReadAll(stdin)
		return "<stdin>", string(data), err
	}
}

func runEval(cmd *cobra.Command, s *session, name, text string, mode expr.Mode, format render.Format, showSource bool) error {
	ctx := cmd.Context()
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeScript, name, trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	var phase int
	if s.timer != nil {
		phase = s.timer.Begin("eval " + name)
	}
	results, err := expr.Run(ctx, expr.NewEnv(mode), name, text)
	if s.timer != nil {
		s.timer.End(phase, fmt.Sprintf("%d results", len(results)))
	}
	span.End("")

	files := []render.File{{Results: results}}
	if format != render.FormatPretty {
		files[0].Err = err
	}
	if rerr := render.Write(cmd.OutOrStdout(), format, files, render.Options{
		Color:      colorEnabled(),
		ShowSource: showSource,
	}); rerr != nil {
		return rerr
	}
	if err != nil && format != render.FormatPretty {
		return errReported
	}
	return err
}
