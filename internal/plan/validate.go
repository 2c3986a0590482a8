package plan

import (
	"errors"
	"fmt"
	"regexp"
)

// lvmName matches the characters LVM accepts in VG and LV names.
var lvmName = regexp.MustCompile(`^[A-Za-z0-9+_.][A-Za-z0-9+_.-]*$`)

// ValidationError describes one invalid field of a plan.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// Validate checks that every volume can be named and addressed unambiguously.
func (p *VolumePlan) Validate() error {
	var errs []error

	if p.EbsVolumes != nil {
		names := make(map[string]bool)
		for i, v := range p.EbsVolumes.Volumes {
			field := fmt.Sprintf("ebs_volumes[%d]", i)
			if v.Name == "" {
				errs = append(errs, ValidationError{field + ".name", "is required"})
			} else if names[v.Name] {
				errs = append(errs, ValidationError{field + ".name", fmt.Sprintf("duplicate volume %q", v.Name)})
			}
			names[v.Name] = true
			if v.SizeGiB <= 0 && v.SnapshotID == "" {
				errs = append(errs, ValidationError{field + ".size", "must be positive unless snapshot_id is set"})
			}
			if v.Device == "" {
				errs = append(errs, ValidationError{field + ".device", "is required"})
			}
		}
	}

	keys := make(map[string]string)
	groups := make(map[string]bool)
	for i, g := range p.LvmVolumeGroups {
		field := fmt.Sprintf("lvm_volume_groups[%d]", i)
		if g.Skipped() {
			continue
		}
		if !lvmName.MatchString(g.Name) {
			errs = append(errs, ValidationError{field + ".name", fmt.Sprintf("invalid volume group name %q", g.Name)})
			continue
		}
		if groups[g.Name] {
			errs = append(errs, ValidationError{field + ".name", fmt.Sprintf("duplicate volume group %q", g.Name)})
			continue
		}
		groups[g.Name] = true
		for j, lv := range g.LogicalVolumes {
			lvField := fmt.Sprintf("%s.logical_volumes[%d]", field, j)
			if !lvmName.MatchString(lv.Name) {
				errs = append(errs, ValidationError{lvField + ".name", fmt.Sprintf("invalid logical volume name %q", lv.Name)})
				continue
			}
			if lv.LogicalExtents == "" {
				errs = append(errs, ValidationError{lvField + ".logical_extents", "is required"})
			}
			key := lv.DeviceKey(g.Name)
			if prev, ok := keys[key]; ok {
				errs = append(errs, ValidationError{lvField + ".name", fmt.Sprintf("device %s already declared by %s", lv.DevicePath(g.Name), prev)})
				continue
			}
			keys[key] = lvField
		}
	}

	return errors.Join(errs...)
}
