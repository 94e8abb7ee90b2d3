package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/devgrove/lintrun/internal/config"
	"github.com/devgrove/lintrun/internal/ui"
	"github.com/devgrove/lintrun/pkg/exitcode"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .lintrun.json config interactively",
	Long: `Create a .lintrun.json file in the current directory describing the
target directory, analysis command, and virtualenv for lint runs.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath
	}

	if _, err := os.Stat(path); err == nil && !initForce {
		exitStatus = exitcode.ConfigError
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg, err := promptConfig(config.Default())
	if err != nil {
		exitStatus = exitcode.ConfigError
		return fmt.Errorf("setup cancelled: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		exitStatus = exitcode.ConfigError
		return err
	}

	if err := config.Save(cfg, path); err != nil {
		exitStatus = exitcode.ConfigError
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	ui.PrintOK(fmt.Sprintf("%s created", path))
	fmt.Println(ui.Indent(fmt.Sprintf("target: %s", cfg.TargetDir)))
	fmt.Println(ui.Indent(fmt.Sprintf("tool: %s", cfg.Tool)))
	if cfg.VenvDir != "" {
		fmt.Println(ui.Indent(fmt.Sprintf("venv: %s", cfg.VenvDir)))
	}
	return nil
}

// promptConfig asks for each config field, seeded with defaults.
func promptConfig(defaults *config.Config) (*config.Config, error) {
	dirPrompt := promptui.Prompt{
		Label:   "Target directory",
		Default: defaults.TargetDir,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("target directory must not be empty")
			}
			return nil
		},
	}
	targetDir, err := dirPrompt.Run()
	if err != nil {
		return nil, err
	}

	toolPrompt := promptui.Prompt{
		Label:   "Analysis command",
		Default: defaults.Tool,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("analysis command must not be empty")
			}
			return nil
		},
	}
	tool, err := toolPrompt.Run()
	if err != nil {
		return nil, err
	}

	venvPrompt := promptui.Prompt{
		Label:   "Virtualenv directory (empty to skip activation)",
		Default: defaults.VenvDir,
	}
	venvDir, err := venvPrompt.Run()
	if err != nil {
		return nil, err
	}

	timeoutPrompt := promptui.Prompt{
		Label:   "Timeout in seconds (0 for default)",
		Default: "0",
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil || n < 0 {
				return fmt.Errorf("timeout must be a non-negative integer")
			}
			return nil
		},
	}
	timeoutStr, err := timeoutPrompt.Run()
	if err != nil {
		return nil, err
	}
	timeout, _ := strconv.Atoi(strings.TrimSpace(timeoutStr))

	return &config.Config{
		TargetDir:      strings.TrimSpace(targetDir),
		Tool:           strings.TrimSpace(tool),
		VenvDir:        strings.TrimSpace(venvDir),
		TimeoutSeconds: timeout,
	}, nil
}
