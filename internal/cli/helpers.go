package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/nopkg/nopkg/internal/analyzer"
	"github.com/nopkg/nopkg/internal/config"
	"github.com/nopkg/nopkg/internal/examples"
	"github.com/nopkg/nopkg/internal/installer"
	"github.com/nopkg/nopkg/internal/registry"
)

// loadConfig resolves the effective configuration, applying the --python
// flag override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if pythonExe != "" {
		cfg.Python.Executable = pythonExe
	}
	return cfg, nil
}

// openRegistry opens the installation registry at its configured location.
func openRegistry(cfg *config.Config) (*registry.Registry, error) {
	path, err := cfg.RegistryPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve registry location: %w", err)
	}
	return registry.OpenAt(path)
}

// newInstaller wires a registry and a resolved site-packages directory
// into an installer. The interpreter query is bounded by the configured
// timeout.
func newInstaller(ctx context.Context, cfg *config.Config, reg *registry.Registry) (*installer.Installer, error) {
	queryCtx, cancel := context.WithTimeout(ctx, cfg.PythonTimeout())
	defer cancel()

	sitePackages, err := installer.SitePackagesDir(queryCtx, cfg.Python.Executable)
	if err != nil {
		return nil, fmt.Errorf("could not determine site-packages directory: %w", err)
	}

	return installer.New(sitePackages, reg), nil
}

// printUsage renders generated example lines: comment lines in yellow,
// code lines indented, blank lines kept as separators.
func printUsage(subject string, report analyzer.Report) {
	lines := examples.Generate(subject, report)
	if len(lines) == 0 {
		return
	}

	pterm.Println()
	pterm.NewStyle(pterm.FgCyan, pterm.Bold).Println("Usage:")
	for _, line := range lines {
		switch {
		case line == "":
			pterm.Println()
		case strings.HasPrefix(line, "#"):
			pterm.FgYellow.Println(line)
		default:
			pterm.Println("  " + line)
		}
	}
}
