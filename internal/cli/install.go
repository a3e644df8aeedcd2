package cli

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nopkg/nopkg/internal/discovery"
)

var (
	installDevFlag  bool
	installNameFlag string
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install SOURCE...",
	Short: "Install a Python module from a file or directory",
	Long: `Install installs Python source into the interpreter's site-packages.

A single .py file is copied as a module. A directory containing __init__.py
is copied as a package. Any other directory has each of its .py files
installed individually. Sources may be glob patterns.

In development mode (-e) nothing is copied; a .pth file redirects the
interpreter to the source location so edits take effect immediately.

Examples:
  # Copy a module into site-packages
  nopkg install utils.py

  # Install under a different import name
  nopkg install utils.py --name helpers

  # Development mode install
  nopkg install -e mytool.py

  # Install every matching file
  nopkg install 'src/*.py'
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().BoolVarP(&installDevFlag, "dev", "e", false, "Development mode: redirect via .pth instead of copying")
	installCmd.Flags().StringVar(&installNameFlag, "name", "", "Custom import name for the installed module")
}

func runInstall(cmd *cobra.Command, args []string) error {
	sources, err := discovery.Expand(args)
	if err != nil {
		return fmt.Errorf("invalid source pattern: %w", err)
	}
	if len(sources) == 0 {
		return fmt.Errorf("no sources matched %v", args)
	}
	if installNameFlag != "" && len(sources) > 1 {
		return fmt.Errorf("--name requires a single source, got %d", len(sources))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	inst, err := newInstaller(cmd.Context(), cfg, reg)
	if err != nil {
		return err
	}

	for _, source := range sources {
		result, err := inst.Install(source, installNameFlag, installDevFlag)
		if err != nil {
			return fmt.Errorf("installation failed: %w", err)
		}

		pterm.Success.Println(result.Message)

		if result.Report != nil && result.Name != "" {
			printUsage(result.Name, result.Report)
		}
	}

	return nil
}
