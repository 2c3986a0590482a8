package dryrun

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/imamik/volplan/internal/plan"
	platformebs "github.com/imamik/volplan/internal/platform/ebs"
	"github.com/imamik/volplan/internal/platform/filesystem"
	lvmclient "github.com/imamik/volplan/internal/platform/lvm"
)

// Call is one recorded operation.
type Call struct {
	Operation string
	Target    string
	Detail    string
	Changed   bool
}

func (c Call) String() string {
	mark := "="
	if c.Changed {
		mark = "+"
	}
	if c.Detail == "" {
		return fmt.Sprintf("%s %s %s", mark, c.Operation, c.Target)
	}
	return fmt.Sprintf("%s %s %s (%s)", mark, c.Operation, c.Target, c.Detail)
}

// Host is an in-memory machine.
type Host struct {
	Calls []Call

	pvs     map[string]bool
	vgs     map[string]bool
	lvs     map[string]bool
	formats map[string]string
	mounts  map[string]filesystem.Mount
	fstab   map[string]string
	dirs    map[string]os.FileMode
	ebs     map[string]bool

	// Fail makes the named operation return an error.
	Fail map[string]error
}

// NewHost returns an empty host.
func NewHost() *Host {
	return &Host{
		pvs:     make(map[string]bool),
		vgs:     make(map[string]bool),
		lvs:     make(map[string]bool),
		formats: make(map[string]string),
		mounts:  make(map[string]filesystem.Mount),
		fstab:   make(map[string]string),
		dirs:    make(map[string]os.FileMode),
		ebs:     make(map[string]bool),
		Fail:    make(map[string]error),
	}
}

// AddDirectory marks path as an existing directory with mode.
func (h *Host) AddDirectory(path string, mode os.FileMode) {
	h.dirs[path] = mode
}

// AddLogicalVolume marks a logical volume as already present.
func (h *Host) AddLogicalVolume(group, name string) {
	h.lvs[group+"/"+name] = true
}

// DirectoryMode returns the mode of path.
func (h *Host) DirectoryMode(path string) (os.FileMode, bool) {
	mode, ok := h.dirs[path]
	return mode, ok
}

// Filesystem returns the filesystem type created on device.
func (h *Host) Filesystem(device string) (string, bool) {
	fstype, ok := h.formats[device]
	return fstype, ok
}

// Mounted reports whether something is mounted at path.
func (h *Host) Mounted(path string) bool {
	_, ok := h.mounts[path]
	return ok
}

// Operations returns the recorded operation names in order.
func (h *Host) Operations() []string {
	ops := make([]string, 0, len(h.Calls))
	for _, c := range h.Calls {
		ops = append(ops, c.Operation+" "+c.Target)
	}
	return ops
}

// Changes returns the recorded calls that changed the host.
func (h *Host) Changes() []Call {
	var changes []Call
	for _, c := range h.Calls {
		if c.Changed {
			changes = append(changes, c)
		}
	}
	return changes
}

// Count returns how many times operation was recorded.
func (h *Host) Count(operation string) int {
	n := 0
	for _, c := range h.Calls {
		if c.Operation == operation {
			n++
		}
	}
	return n
}

func (h *Host) record(operation, target, detail string, changed bool) error {
	if err := h.Fail[operation]; err != nil {
		h.Calls = append(h.Calls, Call{Operation: operation, Target: target, Detail: "failed: " + err.Error()})
		return err
	}
	h.Calls = append(h.Calls, Call{Operation: operation, Target: target, Detail: detail, Changed: changed})
	return nil
}

// DeclarePhysicalVolumes implements the volume manager.
func (h *Host) DeclarePhysicalVolumes(_ context.Context, devices []string) (bool, error) {
	changed := false
	for _, d := range devices {
		if !h.pvs[d] {
			changed = true
		}
	}
	if err := h.record("pvcreate", strings.Join(devices, " "), "", changed); err != nil {
		return false, err
	}
	for _, d := range devices {
		h.pvs[d] = true
	}
	return changed, nil
}

// DeclareVolumeGroup implements the volume manager.
func (h *Host) DeclareVolumeGroup(_ context.Context, name string, devices []string) (bool, error) {
	changed := !h.vgs[name]
	if err := h.record("vgcreate", name, strings.Join(devices, " "), changed); err != nil {
		return false, err
	}
	h.vgs[name] = true
	return changed, nil
}

// DeclareLogicalVolume implements the volume manager.
func (h *Host) DeclareLogicalVolume(_ context.Context, group string, lv plan.LogicalVolume) (bool, error) {
	key := group + "/" + lv.Name
	changed := !h.lvs[key]
	detail := strings.Join(lvmclient.CreateArgs(group, lv), " ")
	if err := h.record("lvcreate", key, detail, changed); err != nil {
		return false, err
	}
	h.lvs[key] = true
	return changed, nil
}

// Format implements the filesystem manager.
func (h *Host) Format(_ context.Context, device, fstype, opts string) error {
	args, err := filesystem.FormatArgs(device, fstype, opts)
	if err != nil {
		return err
	}
	if err := h.record("mkfs", device, "mkfs "+strings.Join(args, " "), true); err != nil {
		return err
	}
	h.formats[device] = fstype
	return nil
}

// DeclareMount implements the filesystem manager.
func (h *Host) DeclareMount(_ context.Context, mnt filesystem.Mount) (bool, error) {
	current, mounted := h.mounts[mnt.Path]
	if mounted && current.Device != mnt.Device {
		return false, fmt.Errorf("%s is mounted at %s, want %s", current.Device, mnt.Path, mnt.Device)
	}
	detail := "mount " + strings.Join(filesystem.MountArgs(mnt), " ")
	if err := h.record("mount", mnt.Path, detail, !mounted); err != nil {
		return false, err
	}
	if mounted {
		return false, nil
	}
	h.mounts[mnt.Path] = mnt
	return true, nil
}

// EnableMount implements the filesystem manager.
func (h *Host) EnableMount(_ context.Context, mnt filesystem.Mount) (bool, error) {
	entry := filesystem.FstabEntry(mnt)
	changed := h.fstab[mnt.Path] != entry
	if err := h.record("enable", mnt.Path, entry, changed); err != nil {
		return false, err
	}
	h.fstab[mnt.Path] = entry
	return changed, nil
}

// DeclareDirectory implements the filesystem manager.
func (h *Host) DeclareDirectory(_ context.Context, path string, mode os.FileMode, onlyIfAbsent bool) (bool, error) {
	current, exists := h.dirs[path]
	changed := !exists || (!onlyIfAbsent && current.Perm() != mode.Perm())
	if err := h.record("directory", path, fmt.Sprintf("%04o", mode.Perm()), changed); err != nil {
		return false, err
	}
	if changed {
		h.dirs[path] = mode
	}
	return changed, nil
}

// CreateEBSVolumes implements the cloud volume collaborator.
func (h *Host) CreateEBSVolumes(_ context.Context, _ platformebs.Credentials, volumes []plan.EbsVolume) ([]platformebs.VolumeResult, error) {
	results := make([]platformebs.VolumeResult, 0, len(volumes))
	for _, v := range volumes {
		exists := h.ebs[v.Name]
		detail := fmt.Sprintf("%s %dGiB", v.Device, v.SizeGiB)
		if err := h.record("ebs", v.Name, detail, !exists); err != nil {
			return results, err
		}
		h.ebs[v.Name] = true
		results = append(results, platformebs.VolumeResult{
			Name:     v.Name,
			VolumeID: "vol-" + v.Name,
			Created:  !exists,
			Attached: !exists,
		})
	}
	return results, nil
}
