package filesystem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/moby/sys/mountinfo"
	"k8s.io/utils/exec"

	"github.com/imamik/volplan/internal/util/command"
)

// DefaultFstab is the boot-time mount table.
const DefaultFstab = "/etc/fstab"

// confirmations answers the prompts mkfs raises for devices that already
// carry a signature.
var confirmations = strings.Repeat("y\n", 16)

// Mount describes a filesystem mounted at Path.
type Mount struct {
	Path    string
	Device  string
	FSType  string
	Options string // comma separated, empty means defaults
}

// Manager performs filesystem operations on the host.
type Manager struct {
	runner *command.Runner
	fstab  string
	mounts func(path string) ([]*mountinfo.Info, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithExec sets the command executor.
func WithExec(e exec.Interface) Option {
	return func(m *Manager) {
		m.runner = command.NewRunner(e)
	}
}

// WithFstab overrides the fstab path.
func WithFstab(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.fstab = path
		}
	}
}

// NewManager creates a filesystem manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		runner: command.NewRunner(nil),
		fstab:  DefaultFstab,
		mounts: mountsAt,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// FormatArgs returns the mkfs arguments for device. opts is split with
// shell quoting rules.
func FormatArgs(device, fstype, opts string) ([]string, error) {
	extra, err := shellquote.Split(opts)
	if err != nil {
		return nil, fmt.Errorf("invalid filesystem options %q: %w", opts, err)
	}
	args := append([]string{"-t", fstype}, extra...)
	return append(args, device), nil
}

// Format creates a filesystem on device. It is destructive and must only be
// called for freshly created devices.
func (m *Manager) Format(ctx context.Context, device, fstype, opts string) error {
	args, err := FormatArgs(device, fstype, opts)
	if err != nil {
		return err
	}
	_, err = m.runner.RunWithInput(ctx, strings.NewReader(confirmations), "mkfs", args...)
	return err
}

// MountArgs returns the mount arguments for mnt.
func MountArgs(mnt Mount) []string {
	args := []string{"-t", mnt.FSType}
	if mnt.Options != "" {
		args = append(args, "-o", mnt.Options)
	}
	return append(args, mnt.Device, mnt.Path)
}

// DeclareMount mounts the device unless it is already mounted at the path.
// Another device mounted there is an error.
func (m *Manager) DeclareMount(ctx context.Context, mnt Mount) (bool, error) {
	infos, err := m.mounts(filepath.Clean(mnt.Path))
	if err != nil {
		return false, fmt.Errorf("failed to check mount point %s: %w", mnt.Path, err)
	}
	if len(infos) > 0 {
		// The last entry is the one visible at the path.
		source := infos[len(infos)-1].Source
		if !sameDevice(source, mnt.Device) {
			return false, fmt.Errorf("%s is mounted at %s, want %s", source, mnt.Path, mnt.Device)
		}
		return false, nil
	}

	if _, err := m.runner.Run(ctx, "mount", MountArgs(mnt)...); err != nil {
		return false, err
	}
	return true, nil
}

func mountsAt(path string) ([]*mountinfo.Info, error) {
	return mountinfo.GetMounts(mountinfo.SingleEntryFilter(path))
}

// sameDevice reports whether both paths name the same block device, following
// /dev/mapper symlinks.
func sameDevice(a, b string) bool {
	if a == b {
		return true
	}
	ra, err := filepath.EvalSymlinks(a)
	if err != nil {
		return false
	}
	rb, err := filepath.EvalSymlinks(b)
	if err != nil {
		return false
	}
	return ra == rb
}

// EnableMount makes sure fstab mounts the device at boot. An entry for the
// same mount point with different settings is replaced.
func (m *Manager) EnableMount(_ context.Context, mnt Mount) (bool, error) {
	data, err := os.ReadFile(m.fstab)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to read %s: %w", m.fstab, err)
	}

	entry := FstabEntry(mnt)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(data) == 0 {
		lines = nil
	}

	found := false
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 2 || strings.HasPrefix(fields[0], "#") || fields[1] != mnt.Path {
			continue
		}
		if strings.Join(fields, " ") == entry {
			return false, nil
		}
		lines[i] = entry
		found = true
		break
	}
	if !found {
		lines = append(lines, entry)
	}

	perm := os.FileMode(0o644)
	if info, statErr := os.Stat(m.fstab); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(m.fstab, []byte(strings.Join(lines, "\n")+"\n"), perm); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", m.fstab, err)
	}
	return true, nil
}

// FstabEntry renders the fstab line for mnt.
func FstabEntry(mnt Mount) string {
	opts := mnt.Options
	if opts == "" {
		opts = "defaults"
	}
	return fmt.Sprintf("%s %s %s %s 0 2", mnt.Device, mnt.Path, mnt.FSType, opts)
}

// DeclareDirectory makes sure path is a directory with the given mode.
// With onlyIfAbsent an existing directory is left untouched.
func (m *Manager) DeclareDirectory(_ context.Context, path string, mode os.FileMode, onlyIfAbsent bool) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(path, mode); err != nil {
			return false, fmt.Errorf("failed to create directory %s: %w", path, err)
		}
		// MkdirAll is subject to the umask.
		if err := os.Chmod(path, mode); err != nil {
			return false, fmt.Errorf("failed to set mode of %s: %w", path, err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	case !info.IsDir():
		return false, fmt.Errorf("%s exists and is not a directory", path)
	case onlyIfAbsent || info.Mode().Perm() == mode.Perm():
		return false, nil
	}

	if err := os.Chmod(path, mode); err != nil {
		return false, fmt.Errorf("failed to set mode of %s: %w", path, err)
	}
	return true, nil
}
