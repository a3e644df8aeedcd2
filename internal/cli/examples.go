package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nopkg/nopkg/internal/analyzer"
)

// examplesCmd represents the examples command
var examplesCmd = &cobra.Command{
	Use:   "examples PATH",
	Short: "Show usage examples for a module or package without installing it",
	Long: `Examples statically analyzes a Python file or package directory and
prints the same usage examples that install would show. The code is never
imported or executed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExamples,
}

func init() {
	rootCmd.AddCommand(examplesCmd)
}

func runExamples(cmd *cobra.Command, args []string) error {
	path := args[0]

	subject := filepath.Base(filepath.Clean(path))
	subject = strings.TrimSuffix(subject, filepath.Ext(subject))

	printUsage(subject, analyzer.Analyze(path))
	return nil
}
