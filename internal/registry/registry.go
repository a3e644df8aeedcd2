// Package registry persists which modules nopkg has installed. The format
// is a flat text file, one "name|source|mode" line per module, kept at
// ~/.nopkg/registry.txt. Two processes racing on the file are not
// serialized; writes are atomic per process but last-writer-wins.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Mode records how a module was installed.
type Mode string

const (
	ModeCopy Mode = "copy" // file copied into site-packages
	ModeDev  Mode = "dev"  // .pth redirect to the source directory
)

// Entry is one registered installation.
type Entry struct {
	Name   string
	Source string
	Mode   Mode
}

// Registry provides thread-safe access to the installation registry.
type Registry struct {
	path    string
	mu      sync.RWMutex
	entries []Entry
}

// Open loads the registry from the default ~/.nopkg/registry.txt location,
// creating the directory if needed.
func Open() (*Registry, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return OpenAt(filepath.Join(home, ".nopkg", "registry.txt"))
}

// OpenAt loads the registry from a custom location. A missing file is not
// an error; it means nothing is installed yet.
func OpenAt(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}

	r := &Registry{path: path}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// Add registers an installation. Re-registering an existing name replaces
// the previous entry.
func (r *Registry) Add(entry Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.Name == entry.Name {
			r.entries[i] = entry
			return r.save()
		}
	}

	r.entries = append(r.entries, entry)
	return r.save()
}

// Remove unregisters a module. Removing an unknown name is a no-op.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	removed := false
	for _, e := range r.entries {
		if e.Name == name {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept

	if !removed {
		return nil
	}
	return r.save()
}

// Get retrieves an entry by module name.
func (r *Registry) Get(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Has reports whether a module name is registered.
func (r *Registry) Has(name string) bool {
	_, found := r.Get(name)
	return found
}

// List returns all entries in registration order.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns all registered module names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.Name)
	}
	return names
}

// load reads the registry file, skipping blank and malformed lines.
func (r *Registry) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read registry file: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			continue
		}
		r.entries = append(r.entries, Entry{
			Name:   parts[0],
			Source: parts[1],
			Mode:   Mode(parts[2]),
		})
	}

	return nil
}

// save writes the registry atomically: temp file first, then rename.
func (r *Registry) save() error {
	var b strings.Builder
	for _, e := range r.entries {
		fmt.Fprintf(&b, "%s|%s|%s\n", e.Name, e.Source, e.Mode)
	}

	tmpPath := r.path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write temporary registry file: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary registry file: %w", err)
	}

	return nil
}
