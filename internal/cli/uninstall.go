package cli

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// uninstallCmd represents the uninstall command
var uninstallCmd = &cobra.Command{
	Use:   "uninstall MODULE",
	Short: "Uninstall a module installed by nopkg",
	Args:  cobra.ExactArgs(1),
	RunE:  runUninstall,
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
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

	message, err := inst.Uninstall(args[0])
	if err != nil {
		return fmt.Errorf("uninstallation failed: %w", err)
	}

	pterm.Success.Println(message)
	return nil
}
