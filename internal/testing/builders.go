package testing

import "github.com/imamik/volplan/internal/plan"

// PlanBuilder provides a fluent API for building volume plans in tests.
// Volumes are added to the most recently added group.
type PlanBuilder struct {
	plan *plan.VolumePlan
}

// NewPlanBuilder creates a builder for a plan called id.
func NewPlanBuilder(id string) *PlanBuilder {
	return &PlanBuilder{plan: &plan.VolumePlan{ID: id}}
}

// WithGroup adds a volume group over devices.
func (b *PlanBuilder) WithGroup(name string, devices ...string) *PlanBuilder {
	b.plan.LvmVolumeGroups = append(b.plan.LvmVolumeGroups, plan.LvmVolumeGroup{
		Name:            name,
		PhysicalVolumes: devices,
	})
	return b
}

// WithVolume adds a linear xfs volume to the last group. An empty mount
// leaves it unmounted.
func (b *PlanBuilder) WithVolume(name, extents, mount string) *PlanBuilder {
	return b.WithLogicalVolume(plan.LogicalVolume{
		Name:           name,
		Filesystem:     plan.DefaultFilesystem,
		Sizing:         plan.Linear{},
		LogicalExtents: extents,
		Mount:          mount,
	})
}

// WithLogicalVolume adds lv to the last group.
func (b *PlanBuilder) WithLogicalVolume(lv plan.LogicalVolume) *PlanBuilder {
	if len(b.plan.LvmVolumeGroups) == 0 {
		panic("WithLogicalVolume called before WithGroup")
	}
	g := &b.plan.LvmVolumeGroups[len(b.plan.LvmVolumeGroups)-1]
	g.LogicalVolumes = append(g.LogicalVolumes, lv)
	return b
}

// WithEBSVolume adds an EBS volume.
func (b *PlanBuilder) WithEBSVolume(name string, sizeGiB int32, device string) *PlanBuilder {
	if b.plan.EbsVolumes == nil {
		b.plan.EbsVolumes = &plan.EbsVolumeSet{}
	}
	b.plan.EbsVolumes.Volumes = append(b.plan.EbsVolumes.Volumes, plan.EbsVolume{
		Name:    name,
		SizeGiB: sizeGiB,
		Device:  device,
	})
	return b
}

// Build returns the plan.
func (b *PlanBuilder) Build() *plan.VolumePlan {
	return b.plan
}
