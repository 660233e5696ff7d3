package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"view-generator/internal/gen"
	"view-generator/internal/plan"
)

func (a *app) newGenCommand() *cobra.Command {
	var f jobFlags

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate view code",
		Long: `Compile each declaration body and write the generated file next to the
source struct, or into --output. Unchanged files are not rewritten.`,
		Example: `  //go:generate go run view-generator/cmd/view-generator gen -t Search --views search.views`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := a.jobs(&f)
			if err != nil {
				return err
			}

			green := color.New(color.FgGreen)

			for _, job := range jobs {
				c, err := a.compile(job, false, cmd.ErrOrStderr())
				if err != nil {
					return err
				}

				written, err := gen.WriteFiles([]gen.GeneratedFile{*c.result.File}, c.job.Output)
				if err != nil {
					return err
				}

				path := filepath.Join(c.job.Output, c.result.File.Filename)
				if len(written) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s unchanged\n", path)
					continue
				}

				green.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}

			return nil
		},
	}

	f.register(cmd, true)

	return cmd
}

func (a *app) newCheckCommand() *cobra.Command {
	var f jobFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate declarations and report stale generated files",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := a.jobs(&f)
			if err != nil {
				return err
			}

			var stale []string

			for _, job := range jobs {
				c, err := a.compile(job, false, cmd.ErrOrStderr())
				if err != nil {
					return err
				}

				path := filepath.Join(c.job.Output, c.result.File.Filename)

				existing, err := os.ReadFile(path)
				if err != nil || !bytes.Equal(existing, c.result.File.Content) {
					stale = append(stale, path)
					continue
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s ok\n", job.Type)
			}

			if len(stale) > 0 {
				return fmt.Errorf("generated files are out of date: %v; run view-generator gen", stale)
			}

			return nil
		},
	}

	f.register(cmd, true)

	return cmd
}

func (a *app) newDescribeCommand() *cobra.Command {
	var f jobFlags

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the resolved views as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := a.jobs(&f)
			if err != nil {
				return err
			}

			for i, job := range jobs {
				c, err := a.compile(job, true, cmd.ErrOrStderr())
				if err != nil {
					return err
				}

				out, err := plan.DescribeYAML(c.result.Plan)
				if err != nil {
					return err
				}

				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "---")
				}

				_, _ = cmd.OutOrStdout().Write(out)
			}

			return nil
		},
	}

	f.register(cmd, false)

	return cmd
}
