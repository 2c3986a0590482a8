package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/volplan/internal/plan"
	"github.com/imamik/volplan/internal/provisioning/dryrun"
	"github.com/imamik/volplan/internal/util/prerequisites"
)

func TestRenderer_Plan(t *testing.T) {
	t.Parallel()
	out := New(false).Plan([]PlanSection{
		{
			Name: "db-tier",
			Calls: []dryrun.Call{
				{Operation: "pvcreate", Target: "/dev/sdb", Changed: true},
				{Operation: "directory", Target: "/mnt/logs", Detail: "0700"},
			},
		},
		{Name: "web", Missing: true},
	})

	assert.Equal(t, `Volume plan db-tier
  + pvcreate /dev/sdb
  = directory /mnt/logs (0700)

Volume plan web
  [??] not registered, skipped
1 change(s) on a fresh host
`, out)
}

func TestRenderer_PlanEmpty(t *testing.T) {
	t.Parallel()
	out := New(false).Plan([]PlanSection{{Name: "empty"}})
	assert.Contains(t, out, "nothing to do")
	assert.Contains(t, out, "0 change(s)")
}

func TestRenderer_Doctor(t *testing.T) {
	t.Parallel()
	results := &prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{
			{Tool: prerequisites.Tool{Name: "lvm", Required: true}, Found: true, Version: "2.03.16"},
			{Tool: prerequisites.Tool{Name: "mkfs", Required: true, Package: "util-linux"}},
			{Tool: prerequisites.Tool{Name: "mkfs.xfs", Description: "Needed for xfs"}},
		},
	}

	out := New(false).Doctor(results)

	assert.Contains(t, out, "[OK] lvm 2.03.16")
	assert.Contains(t, out, "[!!] mkfs (install util-linux)")
	assert.Contains(t, out, "[??] mkfs.xfs Needed for xfs")
}

func TestRenderer_StyledKeepsText(t *testing.T) {
	t.Parallel()
	out := New(true).Plan([]PlanSection{{
		Name:  "db-tier",
		Calls: []dryrun.Call{{Operation: "vgcreate", Target: "data", Changed: true}},
	}})
	assert.Contains(t, out, "vgcreate data")
}

func TestRenderer_VolumePlan(t *testing.T) {
	t.Parallel()
	p := &plan.VolumePlan{
		ID:         "cloud-tier",
		EbsVolumes: &plan.EbsVolumeSet{Volumes: []plan.EbsVolume{{Name: "data", SizeGiB: 100, Device: "/dev/sdf", VolumeType: "gp3"}}},
		LvmVolumeGroups: []plan.LvmVolumeGroup{
			{
				Name:            "data",
				PhysicalVolumes: []string{"/dev/sdf"},
				LogicalVolumes: []plan.LogicalVolume{{
					Name: "db", LogicalExtents: "100%FREE", Sizing: plan.Striped{Stripes: 2}, Filesystem: "xfs", Mount: "/srv/db",
				}},
			},
			{Name: "spare"},
		},
	}

	out := New(false).VolumePlan(p)

	assert.Contains(t, out, "data 100 GiB at /dev/sdf gp3")
	assert.Contains(t, out, "physical volumes: /dev/sdf")
	assert.Contains(t, out, "db 100%FREE striped(2) xfs on /srv/db")
	assert.Contains(t, out, "no physical volumes, skipped")
}
