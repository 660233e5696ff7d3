// Package cli implements the view-generator command line.
package cli

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"view-generator/internal/config"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// app holds state shared by every command of one invocation.
type app struct {
	configPath string
	noColor    bool
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "view-generator",
		Short: "Generate view projections of Go structs",
		Long: `view-generator compiles a small declaration language into Go code.

A declaration body names fragments and views over one source struct. For every
view it generates an owned struct, shared (Ref) and exclusive (Mut) borrows,
conversions from the source, and a tagged union over all views.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./viewgen.yaml)")
	flags.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log pipeline stages")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(a.newGenCommand())
	rootCmd.AddCommand(a.newCheckCommand())
	rootCmd.AddCommand(a.newDescribeCommand())

	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath, ".")
	if err != nil {
		return err
	}

	a.cfg = cfg

	if a.noColor || cfg.Render.NoColor {
		color.NoColor = true
		a.noColor = true
	}

	log, err := newLogger(cfg.Log, a.verbose)
	if err != nil {
		return err
	}

	a.log = log

	return nil
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			out := cmd.OutOrStdout()

			for _, row := range [][2]string{
				{"view-generator version: ", Version},
				{"Git commit: ", GitCommit},
				{"Build date: ", BuildDate},
				{"Go version: ", runtime.Version()},
			} {
				titleColor.Fprint(out, row[0])
				_, _ = out.Write([]byte(row[1] + "\n"))
			}
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)

		return err
	}

	return nil
}
