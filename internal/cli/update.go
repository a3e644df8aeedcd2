package cli

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update MODULE",
	Short: "Update an installed module by reinstalling from its original source",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
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

	result, err := inst.Update(args[0])
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	pterm.Success.Println(result.Message)

	if result.Report != nil && result.Name != "" {
		printUsage(result.Name, result.Report)
	}
	return nil
}
