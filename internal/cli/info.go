package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info MODULE",
	Short: "Show information about an installed module",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}

	entry, found := reg.Get(args[0])
	if !found {
		return fmt.Errorf("module '%s' not found", args[0])
	}

	fmt.Printf("Module: %s\n", entry.Name)
	fmt.Printf("Source: %s\n", entry.Source)
	fmt.Printf("Mode: %s\n", entry.Mode)
	return nil
}
