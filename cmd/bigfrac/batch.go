package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bigfrac/internal/batch"
	"bigfrac/internal/render"
)

func newBatchCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file|dir>...",
		Short: "Evaluate many scripts concurrently",
		Long: `Evaluate script files in parallel, each with its own variables.
Directories are searched recursively for *` + batch.ScriptExt + ` files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := modeSetting(cmd, s.conf)
			if err != nil {
				return err
			}
			format, err := formatSetting(cmd, s.conf)
			if err != nil {
				return err
			}
			jobs, err := intSetting(cmd, "jobs", s.conf.Batch.Jobs)
			if err != nil {
				return err
			}
			if jobs < 0 {
				return fmt.Errorf("--jobs must be >= 0, got %d", jobs)
			}
			uiValue, err := readUIMode(stringSetting(cmd, "ui", s.conf.Batch.UI))
			if err != nil {
				return err
			}

			paths, err := batch.ExpandPaths(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no %s files found", batch.ScriptExt)
			}

			opts := batch.Options{Jobs: jobs, Mode: mode, Timer: s.timer}
			var results []batch.FileResult
			if !s.quiet && shouldUseTUI(uiValue) {
				results, err = runBatchWithUI(cmd.Context(), "evaluating", paths, opts)
			} else {
				results, err = batch.Run(cmd.Context(), paths, opts)
			}
			if err != nil {
				return err
			}

			files := make([]render.File, len(results))
			failed := 0
			for i, r := range results {
				files[i] = render.File{Path: r.Path, Results: r.Results, Err: r.Err}
				if r.Err != nil {
					failed++
				}
			}
			if err := render.Write(cmd.OutOrStdout(), format, files, render.Options{
				Color:      colorEnabled(),
				ShowSource: true,
			}); err != nil {
				return err
			}

			if !s.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "%d files, %d failed\n", len(results), failed)
			}
			if failed > 0 {
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	cmd.Flags().String("mode", "fraction", "number model (fraction|int)")
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	return cmd
}
