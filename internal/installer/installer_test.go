package installer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nopkg/nopkg/internal/analyzer"
	"github.com/nopkg/nopkg/internal/registry"
)

// Test Plan for the installer:
// - Install a single file: copy, register, analyze
// - Install under a custom name
// - Refuse overwriting, with distinct managed vs unmanaged messages
// - Dev mode writes a .pth redirect instead of copying
// - Install a package directory: tree copy, package analysis
// - Install a plain directory: one module per .py file, skip existing
// - Uninstall removes files and registration; unknown names error
// - Update reinstalls from the recorded source
// - Site-packages query fails for a bogus interpreter

const greeterSource = `"""Greeting module."""

def greet(name):
    """Say hello."""
    return f"Hello, {name}!"
`

func newTestInstaller(t *testing.T) (*Installer, string, *registry.Registry) {
	t.Helper()

	sitePackages := t.TempDir()
	reg, err := registry.OpenAt(filepath.Join(t.TempDir(), "registry.txt"))
	require.NoError(t, err)

	inst := New(sitePackages, reg)
	inst.SetQuiet(true)
	return inst, sitePackages, reg
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInstall_SingleFile(t *testing.T) {
	t.Parallel()

	inst, sitePackages, reg := newTestInstaller(t)
	source := writeSource(t, t.TempDir(), "greeter.py", greeterSource)

	result, err := inst.Install(source, "", false)
	require.NoError(t, err)

	assert.Equal(t, "greeter", result.Name)
	assert.Contains(t, result.Message, "Successfully installed module 'greeter'")

	installed, err := os.ReadFile(filepath.Join(sitePackages, "greeter.py"))
	require.NoError(t, err)
	assert.Equal(t, greeterSource, string(installed))

	entry, found := reg.Get("greeter")
	require.True(t, found)
	assert.Equal(t, registry.ModeCopy, entry.Mode)

	report, ok := result.Report.(analyzer.ModuleReport)
	require.True(t, ok)
	require.Len(t, report.Functions, 1)
	assert.Equal(t, "greet", report.Functions[0].Name)
}

func TestInstall_CustomName(t *testing.T) {
	t.Parallel()

	inst, sitePackages, _ := newTestInstaller(t)
	source := writeSource(t, t.TempDir(), "greeter.py", greeterSource)

	result, err := inst.Install(source, "hello", false)
	require.NoError(t, err)

	assert.Equal(t, "hello", result.Name)
	assert.FileExists(t, filepath.Join(sitePackages, "hello.py"))
}

func TestInstall_RefusesExistingTarget(t *testing.T) {
	t.Parallel()

	inst, sitePackages, _ := newTestInstaller(t)
	source := writeSource(t, t.TempDir(), "greeter.py", greeterSource)

	// Unmanaged file already sitting in site-packages.
	writeSource(t, sitePackages, "greeter.py", "x = 1\n")

	_, err := inst.Install(source, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not managed by nopkg")
}

func TestInstall_RefusesManagedTarget(t *testing.T) {
	t.Parallel()

	inst, _, _ := newTestInstaller(t)
	source := writeSource(t, t.TempDir(), "greeter.py", greeterSource)

	_, err := inst.Install(source, "", false)
	require.NoError(t, err)

	_, err = inst.Install(source, "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already installed by nopkg")
}

func TestInstall_MissingSource(t *testing.T) {
	t.Parallel()

	inst, _, _ := newTestInstaller(t)

	_, err := inst.Install("/does/not/exist.py", "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source not found")
}

func TestInstall_DevMode(t *testing.T) {
	t.Parallel()

	inst, sitePackages, reg := newTestInstaller(t)
	sourceDir := t.TempDir()
	source := writeSource(t, sourceDir, "greeter.py", greeterSource)

	result, err := inst.Install(source, "", true)
	require.NoError(t, err)

	// No copy in dev mode, just the .pth redirect.
	assert.NoFileExists(t, filepath.Join(sitePackages, "greeter.py"))

	pth, err := os.ReadFile(filepath.Join(sitePackages, "nopkg_greeter.pth"))
	require.NoError(t, err)

	abs, err := filepath.Abs(sourceDir)
	require.NoError(t, err)
	assert.Equal(t, abs+"\n", string(pth))

	entry, _ := reg.Get("greeter")
	assert.Equal(t, registry.ModeDev, entry.Mode)

	// The source is analyzed since the target does not exist.
	report, ok := result.Report.(analyzer.ModuleReport)
	require.True(t, ok)
	assert.False(t, report.IsEmpty())
}

func TestInstall_PackageDirectory(t *testing.T) {
	t.Parallel()

	inst, sitePackages, _ := newTestInstaller(t)

	pkgDir := filepath.Join(t.TempDir(), "toolkit")
	require.NoError(t, os.MkdirAll(pkgDir, 0755))
	writeSource(t, pkgDir, "__init__.py", "from .impl import run\n")
	writeSource(t, pkgDir, "impl.py", "def run(task):\n    return task\n")

	result, err := inst.Install(pkgDir, "", false)
	require.NoError(t, err)

	assert.Equal(t, "toolkit", result.Name)
	assert.Contains(t, result.Message, "package 'toolkit'")
	assert.FileExists(t, filepath.Join(sitePackages, "toolkit", "__init__.py"))
	assert.FileExists(t, filepath.Join(sitePackages, "toolkit", "impl.py"))

	report, ok := result.Report.(analyzer.PackageReport)
	require.True(t, ok)
	assert.Equal(t, []string{"impl"}, report.Submodules)
	assert.Contains(t, report.Constants, "run")
}

func TestInstall_PlainDirectory(t *testing.T) {
	t.Parallel()

	inst, sitePackages, reg := newTestInstaller(t)

	srcDir := t.TempDir()
	writeSource(t, srcDir, "alpha.py", "def a():\n    pass\n")
	writeSource(t, srcDir, "beta.py", "def b():\n    pass\n")
	writeSource(t, srcDir, "notes.txt", "not python")

	// One target already present: it gets skipped, not overwritten.
	writeSource(t, sitePackages, "alpha.py", "original = True\n")

	result, err := inst.Install(srcDir, "", false)
	require.NoError(t, err)

	assert.Contains(t, result.Message, "beta")
	assert.NotContains(t, result.Message, "alpha")
	assert.Nil(t, result.Report)

	assert.True(t, reg.Has("beta"))
	assert.False(t, reg.Has("alpha"))

	existing, err := os.ReadFile(filepath.Join(sitePackages, "alpha.py"))
	require.NoError(t, err)
	assert.Equal(t, "original = True\n", string(existing))
}

func TestInstall_EmptyDirectory(t *testing.T) {
	t.Parallel()

	inst, _, _ := newTestInstaller(t)

	_, err := inst.Install(t.TempDir(), "", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Python files found")
}

func TestUninstall(t *testing.T) {
	t.Parallel()

	inst, sitePackages, reg := newTestInstaller(t)
	source := writeSource(t, t.TempDir(), "greeter.py", greeterSource)

	_, err := inst.Install(source, "", false)
	require.NoError(t, err)

	message, err := inst.Uninstall("greeter")
	require.NoError(t, err)
	assert.Contains(t, message, "Successfully uninstalled module 'greeter'")

	assert.NoFileExists(t, filepath.Join(sitePackages, "greeter.py"))
	assert.False(t, reg.Has("greeter"))
}

func TestUninstall_DevMode(t *testing.T) {
	t.Parallel()

	inst, sitePackages, _ := newTestInstaller(t)
	source := writeSource(t, t.TempDir(), "greeter.py", greeterSource)

	_, err := inst.Install(source, "", true)
	require.NoError(t, err)

	_, err = inst.Uninstall("greeter")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(sitePackages, "nopkg_greeter.pth"))
}

func TestUninstall_NotInstalled(t *testing.T) {
	t.Parallel()

	inst, _, _ := newTestInstaller(t)

	_, err := inst.Uninstall("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not installed")
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	inst, sitePackages, _ := newTestInstaller(t)
	sourceDir := t.TempDir()
	source := writeSource(t, sourceDir, "greeter.py", greeterSource)

	_, err := inst.Install(source, "", false)
	require.NoError(t, err)

	// Change the source, then update.
	updated := greeterSource + "\ndef wave():\n    \"\"\"Wave instead.\"\"\"\n    return None\n"
	require.NoError(t, os.WriteFile(source, []byte(updated), 0644))

	result, err := inst.Update("greeter")
	require.NoError(t, err)
	assert.Contains(t, result.Message, "Successfully updated module 'greeter'")

	installed, err := os.ReadFile(filepath.Join(sitePackages, "greeter.py"))
	require.NoError(t, err)
	assert.Equal(t, updated, string(installed))

	report, ok := result.Report.(analyzer.ModuleReport)
	require.True(t, ok)
	require.Len(t, report.Functions, 2)
	assert.Equal(t, "wave", report.Functions[1].Name)
}

func TestUpdate_UnknownModule(t *testing.T) {
	t.Parallel()

	inst, _, _ := newTestInstaller(t)

	_, err := inst.Update("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in registry")
}

func TestSitePackagesDir_BadInterpreter(t *testing.T) {
	t.Parallel()

	_, err := SitePackagesDir(context.Background(), "/no/such/python")
	require.Error(t, err)
}
