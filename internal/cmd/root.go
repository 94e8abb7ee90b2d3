package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devgrove/lintrun/internal/config"
	"github.com/devgrove/lintrun/internal/runner"
	"github.com/devgrove/lintrun/internal/ui"
	"github.com/devgrove/lintrun/pkg/exitcode"
)

// verbose is a global flag for verbose output
var verbose bool

var (
	flagConfig  string
	flagDir     string
	flagTool    string
	flagTimeout int
)

// exitStatus is set by the executed command and returned by Execute.
var exitStatus = exitcode.Success

var rootCmd = &cobra.Command{
	Use:   "lintrun",
	Short: "lintrun - run a static-analysis tool and surface its result",
	Long: `lintrun executes a configured static-analysis tool against a target
directory inside an activated Python virtualenv and exits with a status
reflecting the tool's result.

Exit codes:
  0  analysis passed
  1  analysis reported findings (any non-zero tool status)
  2  configuration error
  3  environment error (missing directory, venv, or tool)

With no flags and no .lintrun.json, lintrun lints ./backend_api with
flake8 inside backend_api/venv.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLint,
}

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		if exitStatus == exitcode.Success {
			exitStatus = exitcode.ConfigError
		}
	}
	return exitStatus
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path (default .lintrun.json)")

	// Run flags override the loaded config
	rootCmd.Flags().StringVarP(&flagDir, "dir", "d", "", "target directory to analyze")
	rootCmd.Flags().StringVarP(&flagTool, "tool", "t", "", "analysis command to run")
	rootCmd.Flags().String("venv", "", "virtualenv to activate (relative to target dir)")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "tool timeout in seconds")

	rootCmd.AddCommand(initCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		exitStatus = exitcode.ConfigError
		return err
	}

	if verbose {
		ui.PrintInfo(fmt.Sprintf("target: %s", cfg.TargetDir))
		ui.PrintInfo(fmt.Sprintf("tool: %s", cfg.Tool))
		if cfg.VenvDir != "" {
			ui.PrintInfo(fmt.Sprintf("venv: %s", cfg.VenvDir))
		}
	}

	result, err := runner.New(cfg).Run(context.Background())
	exitStatus = result.Code
	if err != nil {
		return err
	}

	if verbose {
		if result.Passed() {
			ui.PrintOK(fmt.Sprintf("analysis passed in %s", result.Tool.Duration.Round(time.Millisecond)))
		} else {
			ui.PrintWarn(fmt.Sprintf("analysis reported findings (tool exit %d)", result.Tool.ExitCode))
		}
	}

	return nil
}

// loadRunConfig loads the config file and applies flag overrides.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if flagDir != "" {
		cfg.TargetDir = flagDir
	}
	if flagTool != "" {
		cfg.Tool = flagTool
	}
	if cmd.Flags().Changed("venv") {
		cfg.VenvDir, _ = cmd.Flags().GetString("venv")
	}
	if flagTimeout > 0 {
		cfg.TimeoutSeconds = flagTimeout
	}

	return cfg, nil
}
