package lvm

import (
	"context"
	"fmt"
	"os"

	"github.com/imamik/volplan/internal/plan"
	"github.com/imamik/volplan/internal/platform/filesystem"
	"github.com/imamik/volplan/internal/provisioning"
	"github.com/imamik/volplan/internal/util/naming"
)

const phaseName = "lvm"

// Mount point modes.
const (
	// MountPointInitialMode is used when the mount point has to be created.
	MountPointInitialMode os.FileMode = 0o700
	// MountPointMode is enforced once the filesystem is mounted.
	MountPointMode os.FileMode = 0o777
)

// VolumeManager declares LVM objects. Each method reports whether it
// created anything.
type VolumeManager interface {
	DeclarePhysicalVolumes(ctx context.Context, devices []string) (bool, error)
	DeclareVolumeGroup(ctx context.Context, name string, devices []string) (bool, error)
	DeclareLogicalVolume(ctx context.Context, group string, lv plan.LogicalVolume) (bool, error)
}

// FilesystemManager formats, mounts and prepares mount points.
type FilesystemManager interface {
	// Format is destructive and only called right after a volume is created.
	Format(ctx context.Context, device, fstype, opts string) error
	DeclareMount(ctx context.Context, mnt filesystem.Mount) (bool, error)
	EnableMount(ctx context.Context, mnt filesystem.Mount) (bool, error)
	DeclareDirectory(ctx context.Context, path string, mode os.FileMode, onlyIfAbsent bool) (bool, error)
}

// Phase provisions the LVM volume groups of a plan.
type Phase struct {
	volumes VolumeManager
	fs      FilesystemManager
}

// NewPhase creates the LVM phase.
func NewPhase(volumes VolumeManager, fs FilesystemManager) *Phase {
	return &Phase{volumes: volumes, fs: fs}
}

// Name implements provisioning.Phase.
func (p *Phase) Name() string {
	return phaseName
}

// Provision implements provisioning.Phase.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	if ctx.Plan == nil {
		return nil
	}

	var groups []plan.LvmVolumeGroup
	for _, g := range ctx.Plan.LvmVolumeGroups {
		if !g.Skipped() {
			groups = append(groups, g)
		}
	}

	for i, g := range groups {
		if err := p.provisionGroup(ctx, g); err != nil {
			return err
		}
		ctx.Observer.Progress(phaseName, i+1, len(groups))
	}
	return nil
}

func (p *Phase) provisionGroup(ctx *provisioning.Context, g plan.LvmVolumeGroup) error {
	_, err := p.declare(ctx, "pvcreate", naming.PhysicalVolumes(g.Name), func() (bool, error) {
		return p.volumes.DeclarePhysicalVolumes(ctx, g.PhysicalVolumes)
	})
	if err != nil {
		return err
	}

	_, err = p.declare(ctx, "vgcreate", naming.VolumeGroup(g.Name), func() (bool, error) {
		return p.volumes.DeclareVolumeGroup(ctx, g.Name, g.PhysicalVolumes)
	})
	if err != nil {
		return err
	}

	for _, lv := range g.LogicalVolumes {
		if err := p.provisionLogicalVolume(ctx, g.Name, lv); err != nil {
			return err
		}
	}
	return nil
}

func (p *Phase) provisionLogicalVolume(ctx *provisioning.Context, group string, lv plan.LogicalVolume) error {
	fstype := lv.Filesystem
	if fstype == "" {
		fstype = plan.DefaultFilesystem
	}
	device := lv.DevicePath(group)

	created, err := p.declare(ctx, "lvcreate", naming.LogicalVolume(group, lv.Name), func() (bool, error) {
		return p.volumes.DeclareLogicalVolume(ctx, group, lv)
	})
	if err != nil {
		return err
	}

	if created {
		_, err := p.declare(ctx, "mkfs", naming.Format(group, lv.Name), func() (bool, error) {
			return true, p.fs.Format(ctx, device, fstype, lv.FilesystemOpts)
		})
		if err != nil {
			return err
		}
	}

	if lv.Mount == "" {
		return nil
	}

	mnt := filesystem.Mount{Path: lv.Mount, Device: device, FSType: fstype, Options: lv.MountOpts}
	dir := naming.Directory(lv.Mount)
	mount := naming.Mount(group, lv.Name)

	steps := []struct {
		operation string
		resource  string
		fn        func() (bool, error)
	}{
		{"directory", dir, func() (bool, error) {
			return p.fs.DeclareDirectory(ctx, lv.Mount, MountPointInitialMode, true)
		}},
		{"mount", mount, func() (bool, error) { return p.fs.DeclareMount(ctx, mnt) }},
		{"enable", mount, func() (bool, error) { return p.fs.EnableMount(ctx, mnt) }},
		{"directory", dir, func() (bool, error) {
			return p.fs.DeclareDirectory(ctx, lv.Mount, MountPointMode, false)
		}},
	}
	for _, s := range steps {
		if _, err := p.declare(ctx, s.operation, s.resource, s.fn); err != nil {
			return err
		}
	}
	return nil
}

// declare runs one operation and reports its outcome.
func (p *Phase) declare(ctx *provisioning.Context, operation, resource string, fn func() (bool, error)) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	changed, err := fn()
	provisioning.ReportStep(ctx.Observer, provisioning.Step{
		Phase:     phaseName,
		Operation: operation,
		Resource:  resource,
		Changed:   changed && err == nil,
		Err:       err,
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", resource, err)
	}
	return changed, nil
}
