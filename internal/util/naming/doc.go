// Package naming derives device paths and resource identities for planned volumes.
//
// Device paths follow the device-mapper convention /dev/mapper/{vg}-{lv},
// where hyphens inside either name are doubled so the pair can always be
// recovered. Device keys replace path separators and are used wherever a
// logical volume needs a stable identifier (events, metrics, dry-run output).
package naming
