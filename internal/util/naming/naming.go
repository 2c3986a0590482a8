package naming

import (
	"fmt"
	"strings"
)

// MapperDir is the directory device-mapper exposes logical volumes under.
const MapperDir = "/dev/mapper"

// DevicePath returns the device-mapper path of a logical volume.
func DevicePath(group, volume string) string {
	return fmt.Sprintf("%s/%s-%s", MapperDir, escape(group), escape(volume))
}

// DeviceKey returns DevicePath with path separators replaced so the result
// is usable as a flat identifier.
func DeviceKey(group, volume string) string {
	return strings.ReplaceAll(DevicePath(group, volume), "/", "_")
}

// escape doubles hyphens the same way device-mapper does for LVM names.
func escape(name string) string {
	return strings.ReplaceAll(name, "-", "--")
}

// Resource names for the operations of a plan. Group-level names embed the
// group so two groups in one plan never share an identity.

func PhysicalVolumes(group string) string {
	return fmt.Sprintf("pvcreate-%s", group)
}

func VolumeGroup(group string) string {
	return fmt.Sprintf("vgcreate-%s", group)
}

func LogicalVolume(group, volume string) string {
	return fmt.Sprintf("lvcreate-%s", DeviceKey(group, volume))
}

func Format(group, volume string) string {
	return fmt.Sprintf("mkfs-%s", DeviceKey(group, volume))
}

func Mount(group, volume string) string {
	return fmt.Sprintf("mount-%s", DeviceKey(group, volume))
}

func Directory(path string) string {
	return fmt.Sprintf("directory-%s", path)
}

func EBSVolume(name string) string {
	return fmt.Sprintf("ebs-%s", name)
}

// EBSNameTag is the EC2 tag key that identifies volumes created for a plan.
const EBSNameTag = "volplan:name"
