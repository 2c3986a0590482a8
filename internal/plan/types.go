package plan

import (
	"fmt"

	"github.com/imamik/volplan/internal/util/naming"
)

// DefaultFilesystem is used for logical volumes that do not name one.
const DefaultFilesystem = "xfs"

// VolumePlan is the desired storage layout registered under a name.
type VolumePlan struct {
	ID              string
	EbsVolumes      *EbsVolumeSet
	LvmVolumeGroups []LvmVolumeGroup
}

// HasEBS reports whether the plan requests any cloud volumes.
func (p *VolumePlan) HasEBS() bool {
	return p.EbsVolumes != nil && len(p.EbsVolumes.Volumes) > 0
}

// EbsVolumeSet is the list of EBS volumes a plan requests. A non-empty set
// requires AWS credentials.
type EbsVolumeSet struct {
	Volumes []EbsVolume
}

// EbsVolume describes one EBS volume and where it is attached.
type EbsVolume struct {
	Name             string
	SizeGiB          int32
	Device           string
	VolumeType       string
	IOPS             int32
	Throughput       int32
	SnapshotID       string
	AvailabilityZone string
	Encrypted        bool
	KMSKeyID         string
	Tags             map[string]string
}

// LvmVolumeGroup is a volume group built from physical volumes.
type LvmVolumeGroup struct {
	Name            string
	PhysicalVolumes []string
	LogicalVolumes  []LogicalVolume
}

// Skipped reports whether the group has no physical volumes and is
// therefore treated as absent.
func (g LvmVolumeGroup) Skipped() bool {
	return len(g.PhysicalVolumes) == 0
}

// LogicalVolume is a logical volume and the filesystem placed on it.
type LogicalVolume struct {
	Name           string
	Filesystem     string
	FilesystemOpts string
	Sizing         Sizing
	LogicalExtents string
	Mount          string
	MountOpts      string
}

// DevicePath returns the device-mapper path of the volume within group.
func (lv LogicalVolume) DevicePath(group string) string {
	return naming.DevicePath(group, lv.Name)
}

// DeviceKey returns the flat identifier of the volume within group.
func (lv LogicalVolume) DeviceKey(group string) string {
	return naming.DeviceKey(group, lv.Name)
}

// Sizing is the allocation policy of a logical volume: one of [Linear],
// [Striped] or [Mirrored].
type Sizing interface {
	fmt.Stringer
	sizing()
}

// Linear allocates extents without striping or mirroring.
type Linear struct{}

// Striped spreads extents over Stripes physical volumes.
type Striped struct {
	Stripes int
	// StripeSize is passed to lvcreate as is (KiB unless a unit is given).
	StripeSize string
}

// Mirrored keeps Mirrors additional copies of every extent.
type Mirrored struct {
	Mirrors int
	// CoreLog keeps the mirror log in memory instead of on disk.
	CoreLog bool
}

func (Linear) sizing()   {}
func (Striped) sizing()  {}
func (Mirrored) sizing() {}

func (Linear) String() string { return "linear" }

func (s Striped) String() string {
	if s.StripeSize == "" {
		return fmt.Sprintf("striped(%d)", s.Stripes)
	}
	return fmt.Sprintf("striped(%d, %s)", s.Stripes, s.StripeSize)
}

func (m Mirrored) String() string {
	if m.CoreLog {
		return fmt.Sprintf("mirrored(%d, corelog)", m.Mirrors)
	}
	return fmt.Sprintf("mirrored(%d)", m.Mirrors)
}
