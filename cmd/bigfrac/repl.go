package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bigfrac/internal/expr"
	"bigfrac/internal/render"
)

const replHelp = `statements are evaluated as you type them
  :vars   list variables
  :help   show this help
  :quit   leave (or Ctrl-D)
`

// lineReader yields input lines without their newline.
type lineReader interface {
	ReadLine() (string, error)
}

type scanReader struct{ sc *bufio.Scanner }

func (r scanReader) ReadLine() (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func newReplCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := modeSetting(cmd, s.conf)
			if err != nil {
				return err
			}

			in, out := cmd.InOrStdin(), cmd.OutOrStdout()
			var lines lineReader = scanReader{sc: bufio.NewScanner(in)}
			if f, ok := in.(*os.File); ok && isTerminal(f) {
				fd := int(f.Fd()) //nolint:gosec // G115: file descriptors fit in int.
				state, err := term.MakeRaw(fd)
				if err != nil {
					return fmt.Errorf("failed to enter raw mode: %w", err)
				}
				defer func() { _ = term.Restore(fd, state) }() //nolint:errcheck
				t := term.NewTerminal(struct {
					io.Reader
					io.Writer
				}{f, out}, "> ")
				lines, out = t, t
			}

			if !s.quiet {
				fmt.Fprintf(out, "bigfrac %s mode, :help for commands\n", mode)
			}
			return repl(cmd, expr.NewEnv(mode), lines, out)
		},
	}
	cmd.Flags().String("mode", "fraction", "number model (fraction|int)")
	return cmd
}

// repl evaluates line by line. Errors are printed and the session goes on.
// A line ending in a backslash continues on the next one.
func repl(cmd *cobra.Command, env *expr.Env, lines lineReader, out io.Writer) error {
	var pending strings.Builder
	for {
		line, err := lines.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if strings.HasSuffix(line, "\\") {
			pending.WriteString(line)
			pending.WriteByte('\n')
			continue
		}
		pending.WriteString(line)
		text := pending.String()
		pending.Reset()

		switch strings.TrimSpace(text) {
		case ":quit", ":q", ":exit":
			return nil
		case ":help":
			fmt.Fprint(out, replHelp)
			continue
		case ":vars":
			for _, name := range env.Names() {
				v, _ := env.Get(name)
				fmt.Fprintf(out, "%s = %s\n", name, expr.Result{Value: v, Mode: env.Mode()}.Text())
			}
			continue
		}

		results, err := expr.Run(cmd.Context(), env, "<repl>", text)
		files := []render.File{{Results: results, Err: err}}
		if rerr := render.Pretty(out, files, render.Options{Color: colorEnabled()}); rerr != nil {
			return rerr
		}
	}
}
