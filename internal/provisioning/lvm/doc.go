// Package lvm applies the LVM volume groups of a plan.
//
// For every group with physical volumes it declares the physical volumes,
// the volume group and then each logical volume in order. A logical volume
// is formatted only when its declaration reports that it was just created,
// so existing filesystems are never reformatted. Mounted volumes get their
// mount point created with a restrictive mode if absent, are mounted,
// persisted in fstab, and finally have the mount point opened up to 0777.
package lvm
