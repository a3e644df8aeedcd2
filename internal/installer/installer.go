// Package installer copies standalone Python files and simple packages
// into a Python interpreter's site-packages directory, records them in the
// registry, and analyzes the installed code for usage display.
package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/nopkg/nopkg/internal/analyzer"
	"github.com/nopkg/nopkg/internal/registry"
)

// Installer installs modules into one interpreter's site-packages.
type Installer struct {
	sitePackages string
	reg          *registry.Registry
	quiet        bool
}

// Result describes a completed installation.
type Result struct {
	Name    string
	Message string
	Report  analyzer.Report // nil when no usage info is available
}

// New creates an installer for a resolved site-packages directory.
func New(sitePackages string, reg *registry.Registry) *Installer {
	return &Installer{sitePackages: sitePackages, reg: reg}
}

// SetQuiet suppresses progress output for multi-file installs.
func (i *Installer) SetQuiet(quiet bool) {
	i.quiet = quiet
}

// Install installs a source path: a single .py file, a package directory
// (one containing __init__.py), or a plain directory of Python files. In
// dev mode a .pth redirect file is written instead of copying, so edits to
// the source take effect without reinstalling.
func (i *Installer) Install(source, name string, devMode bool) (*Result, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("source not found: %s", source)
	}

	if info.IsDir() {
		if _, err := os.Stat(filepath.Join(source, "__init__.py")); err == nil {
			return i.installPackage(source, name, devMode)
		}
		return i.installDirectory(source, devMode)
	}

	return i.installFile(source, name, devMode)
}

// installFile installs a single module file as <site-packages>/<name>.py.
func (i *Installer) installFile(source, name string, devMode bool) (*Result, error) {
	moduleName := name
	if moduleName == "" {
		moduleName = stem(source)
	}

	target := filepath.Join(i.sitePackages, moduleName+".py")
	if err := i.checkNotInstalled(moduleName, target); err != nil {
		return nil, err
	}

	if devMode {
		if err := i.writePthFile(moduleName, filepath.Dir(source)); err != nil {
			return nil, err
		}
	} else if err := copyFile(source, target); err != nil {
		return nil, fmt.Errorf("failed to install module: %w", err)
	}

	if err := i.register(moduleName, source, devMode); err != nil {
		return nil, err
	}

	// Dev-mode installs leave the code at the source location, so that is
	// what gets analyzed.
	analyzed := target
	if devMode {
		analyzed = source
	}

	return &Result{
		Name:    moduleName,
		Message: fmt.Sprintf("Successfully installed module '%s'", moduleName),
		Report:  analyzer.AnalyzeModule(analyzed),
	}, nil
}

// installPackage installs a directory containing __init__.py as an
// importable package.
func (i *Installer) installPackage(source, name string, devMode bool) (*Result, error) {
	pkgName := name
	if pkgName == "" {
		pkgName = filepath.Base(filepath.Clean(source))
	}

	target := filepath.Join(i.sitePackages, pkgName)
	if err := i.checkNotInstalled(pkgName, target); err != nil {
		return nil, err
	}

	if devMode {
		parent := filepath.Dir(filepath.Clean(source))
		if err := i.writePthFile(pkgName, parent); err != nil {
			return nil, err
		}
	} else if err := copyTree(source, target); err != nil {
		return nil, fmt.Errorf("failed to install package: %w", err)
	}

	if err := i.register(pkgName, source, devMode); err != nil {
		return nil, err
	}

	analyzed := target
	if devMode {
		analyzed = source
	}

	return &Result{
		Name:    pkgName,
		Message: fmt.Sprintf("Successfully installed package '%s'", pkgName),
		Report:  analyzer.AnalyzePackage(analyzed),
	}, nil
}

// installDirectory installs every .py file in a plain directory as its own
// module, skipping targets that already exist.
func (i *Installer) installDirectory(source string, devMode bool) (*Result, error) {
	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", source, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".py" {
			continue
		}
		files = append(files, filepath.Join(source, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no Python files found in %s", source)
	}

	var bar *progressbar.ProgressBar
	if !i.quiet {
		bar = progressbar.Default(int64(len(files)), "installing")
	}

	var installed []string
	for _, file := range files {
		if bar != nil {
			bar.Add(1)
		}

		moduleName := stem(file)
		target := filepath.Join(i.sitePackages, moduleName+".py")
		if _, err := os.Stat(target); err == nil {
			continue // skip existing modules
		}

		if devMode {
			if err := i.writePthFile(moduleName, filepath.Dir(file)); err != nil {
				continue
			}
		} else if err := copyFile(file, target); err != nil {
			continue
		}

		if err := i.register(moduleName, file, devMode); err != nil {
			continue
		}
		installed = append(installed, moduleName)
	}

	if len(installed) == 0 {
		return nil, fmt.Errorf("no modules were installed")
	}

	return &Result{
		Message: fmt.Sprintf("Successfully installed modules: %s", strings.Join(installed, ", ")),
	}, nil
}

// Uninstall removes an installed module or package and its registration.
func (i *Installer) Uninstall(name string) (string, error) {
	moduleFile := filepath.Join(i.sitePackages, name+".py")
	packageDir := filepath.Join(i.sitePackages, name)
	pthFile := filepath.Join(i.sitePackages, "nopkg_"+name+".pth")

	removed := false

	if _, err := os.Stat(moduleFile); err == nil {
		if err := os.Remove(moduleFile); err != nil {
			return "", fmt.Errorf("failed to remove %s: %w", moduleFile, err)
		}
		removed = true
	}

	if info, err := os.Stat(packageDir); err == nil && info.IsDir() {
		if err := os.RemoveAll(packageDir); err != nil {
			return "", fmt.Errorf("failed to remove %s: %w", packageDir, err)
		}
		removed = true
	}

	if _, err := os.Stat(pthFile); err == nil {
		if err := os.Remove(pthFile); err != nil {
			return "", fmt.Errorf("failed to remove %s: %w", pthFile, err)
		}
		removed = true
	}

	if !removed {
		return "", fmt.Errorf("module %s is not installed", name)
	}

	if err := i.reg.Remove(name); err != nil {
		return "", err
	}

	return fmt.Sprintf("Successfully uninstalled module '%s'", name), nil
}

// Update reinstalls a module from its recorded source with its recorded
// mode.
func (i *Installer) Update(name string) (*Result, error) {
	entry, found := i.reg.Get(name)
	if !found {
		return nil, fmt.Errorf("module '%s' not found in registry", name)
	}

	if _, err := i.Uninstall(name); err != nil {
		return nil, fmt.Errorf("failed to uninstall existing module: %w", err)
	}

	result, err := i.Install(entry.Source, name, entry.Mode == registry.ModeDev)
	if err != nil {
		return nil, fmt.Errorf("failed to reinstall module: %w", err)
	}

	result.Message = fmt.Sprintf("Successfully updated module '%s'", name)
	return result, nil
}

// checkNotInstalled refuses installs over an existing target, with a
// different message when the module is nopkg-managed.
func (i *Installer) checkNotInstalled(name, target string) error {
	if _, err := os.Stat(target); err != nil {
		return nil
	}
	if i.reg.Has(name) {
		return fmt.Errorf("module '%s' is already installed by nopkg; use 'nopkg uninstall %s' first", name, name)
	}
	return fmt.Errorf("module '%s' already exists (not managed by nopkg)", name)
}

// writePthFile writes the dev-mode path redirect so the interpreter adds
// the source directory to sys.path.
func (i *Installer) writePthFile(name, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve source directory: %w", err)
	}

	pthPath := filepath.Join(i.sitePackages, "nopkg_"+name+".pth")
	if err := os.WriteFile(pthPath, []byte(abs+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", pthPath, err)
	}
	return nil
}

func (i *Installer) register(name, source string, devMode bool) error {
	mode := registry.ModeCopy
	if devMode {
		mode = registry.ModeDev
	}
	return i.reg.Add(registry.Entry{Name: name, Source: source, Mode: mode})
}

// stem returns a file name without its directory or extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// copyFile copies a regular file, preserving its permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}

	return out.Close()
}

// copyTree copies a directory recursively, skipping __pycache__.
func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if info.Name() == "__pycache__" {
				return filepath.SkipDir
			}
			return os.MkdirAll(filepath.Join(dst, rel), 0755)
		}

		return copyFile(path, filepath.Join(dst, rel))
	})
}
