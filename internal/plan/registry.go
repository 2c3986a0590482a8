package plan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrPlanNotFound is returned by Registry.Get for names that are not registered.
var ErrPlanNotFound = errors.New("volume plan not found")

// Registry is a keyed store of volume plans.
type Registry interface {
	// List returns the names of all registered plans.
	List(ctx context.Context) ([]string, error)

	// Get loads and decodes the plan registered under name.
	Get(ctx context.Context, name string) (*VolumePlan, error)
}

// itemExtensions are tried in order when resolving a plan name to a file.
var itemExtensions = []string{".json", ".yaml", ".yml"}

// DirRegistry reads plans from a data-bag directory holding one item per
// file, named after the plan.
type DirRegistry struct {
	dir string
}

// NewDirRegistry returns a registry over the items in dir.
func NewDirRegistry(dir string) *DirRegistry {
	return &DirRegistry{dir: dir}
}

// List implements Registry.
func (r *DirRegistry) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan registry %s: %w", r.dir, err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !isItemExtension(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Get implements Registry.
func (r *DirRegistry) Get(_ context.Context, name string) (*VolumePlan, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: invalid name %q", ErrPlanNotFound, name)
	}

	for _, ext := range itemExtensions {
		path := filepath.Join(r.dir, name+ext)
		// #nosec G304 - name is restricted to a single path element above
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read volume plan %s: %w", path, err)
		}
		return Parse(name, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
}

func isItemExtension(ext string) bool {
	for _, e := range itemExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// StaticRegistry serves plans held in memory.
type StaticRegistry map[string]*VolumePlan

// List implements Registry.
func (r StaticRegistry) List(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Get implements Registry.
func (r StaticRegistry) Get(_ context.Context, name string) (*VolumePlan, error) {
	p, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	return p, nil
}
