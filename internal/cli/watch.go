package cli

import (
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nopkg/nopkg/internal/analyzer"
	"github.com/nopkg/nopkg/internal/registry"
	"github.com/nopkg/nopkg/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch dev-mode installs and refresh usage examples on change",
	Long: `Watch monitors the source locations of every development-mode install.
When a watched .py file changes, the module is re-analyzed and its usage
examples are printed again. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	reg, err := openRegistry(cfg)
	if err != nil {
		return err
	}

	// Only dev-mode installs live at their source location; copied modules
	// do not change underneath us.
	roots := make(map[string][]registry.Entry)
	for _, entry := range reg.List() {
		if entry.Mode != registry.ModeDev {
			continue
		}

		root := entry.Source
		if info, err := os.Stat(entry.Source); err != nil || !info.IsDir() {
			root = filepath.Dir(entry.Source)
		}
		roots[root] = append(roots[root], entry)
	}

	if len(roots) == 0 {
		pterm.Info.Println("No dev-mode modules to watch")
		return nil
	}

	dirs := make([]string, 0, len(roots))
	for root := range roots {
		dirs = append(dirs, root)
	}

	w, err := watcher.New(dirs, cfg.WatchDebounce())
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	err = w.Start(ctx, func(files []string) {
		seen := make(map[string]bool)
		for _, file := range files {
			for root, entries := range roots {
				if !strings.HasPrefix(file, root+string(filepath.Separator)) && filepath.Dir(file) != root {
					continue
				}
				for _, entry := range entries {
					if seen[entry.Name] {
						continue
					}
					seen[entry.Name] = true

					pterm.Info.Printf("%s changed, refreshing examples\n", entry.Name)
					printUsage(entry.Name, analyzer.Analyze(entry.Source))
				}
			}
		}
	})
	if err != nil {
		w.Stop()
		return err
	}

	pterm.Info.Printf("Watching %d location(s) for changes (Ctrl-C to stop)\n", len(dirs))

	<-ctx.Done()
	return w.Stop()
}
