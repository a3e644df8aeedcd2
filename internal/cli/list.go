package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all modules installed by nopkg",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}

	names := reg.Names()
	if len(names) == 0 {
		fmt.Println("No modules installed by nopkg")
		return nil
	}

	sort.Strings(names)

	fmt.Println("Modules installed by nopkg:")
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
