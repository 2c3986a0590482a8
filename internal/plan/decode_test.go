package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dbTierJSON = `{
  "id": "db-tier",
  "lvm_volume_groups": [
    {
      "name": "data",
      "physical_volumes": ["/dev/sdb"],
      "logical_volumes": [
        {"name": "logs", "logical_extents": "100%FREE", "mount": "/mnt/logs"}
      ]
    }
  ]
}`

func TestParse_DBTier(t *testing.T) {
	p, err := Parse("db-tier", []byte(dbTierJSON))
	require.NoError(t, err)

	assert.Equal(t, "db-tier", p.ID)
	assert.False(t, p.HasEBS())
	require.Len(t, p.LvmVolumeGroups, 1)

	g := p.LvmVolumeGroups[0]
	assert.Equal(t, "data", g.Name)
	assert.Equal(t, []string{"/dev/sdb"}, g.PhysicalVolumes)
	require.Len(t, g.LogicalVolumes, 1)

	lv := g.LogicalVolumes[0]
	assert.Equal(t, "logs", lv.Name)
	assert.Equal(t, "xfs", lv.Filesystem)
	assert.Equal(t, Linear{}, lv.Sizing)
	assert.Equal(t, "100%FREE", lv.LogicalExtents)
	assert.Equal(t, "/mnt/logs", lv.Mount)
	assert.Equal(t, "/dev/mapper/data-logs", lv.DevicePath(g.Name))
}

func TestParse_YAML(t *testing.T) {
	data := `
lvm_volume_groups:
  - name: data
    physical_volumes: /dev/sdc
    logical_volumes:
      name: scratch
      filesystem: ext4
      filesystem_opts: -L scratch
      logical_extents: 50%VG
      mount_opts: [noatime, nodiratime]
`
	p, err := Parse("scratch", []byte(data))
	require.NoError(t, err)

	assert.Equal(t, "scratch", p.ID)
	g := p.LvmVolumeGroups[0]
	assert.Equal(t, []string{"/dev/sdc"}, g.PhysicalVolumes)
	require.Len(t, g.LogicalVolumes, 1)
	lv := g.LogicalVolumes[0]
	assert.Equal(t, "ext4", lv.Filesystem)
	assert.Equal(t, "-L scratch", lv.FilesystemOpts)
	assert.Equal(t, "noatime,nodiratime", lv.MountOpts)
	assert.Empty(t, lv.Mount)
}

func TestDecode_Sizing(t *testing.T) {
	tests := []struct {
		name string
		lv   map[string]interface{}
		want Sizing
	}{
		{
			name: "linear",
			lv:   map[string]interface{}{},
			want: Linear{},
		},
		{
			name: "striped",
			lv:   map[string]interface{}{"stripes": float64(4), "stripe_size": float64(64)},
			want: Striped{Stripes: 4, StripeSize: "64"},
		},
		{
			name: "mirrored",
			lv:   map[string]interface{}{"mirror": float64(1), "corelog": true},
			want: Mirrored{Mirrors: 1, CoreLog: true},
		},
		{
			name: "mirror wins over stripes",
			lv: map[string]interface{}{
				"stripes": float64(2), "stripe_size": "128k",
				"mirror": float64(2),
			},
			want: Mirrored{Mirrors: 2},
		},
		{
			name: "corelog alone is ignored",
			lv:   map[string]interface{}{"corelog": true},
			want: Linear{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lv := map[string]interface{}{"name": "lv0", "logical_extents": "10%VG"}
			for k, v := range tt.lv {
				lv[k] = v
			}
			item := map[string]interface{}{
				"lvm_volume_groups": []interface{}{
					map[string]interface{}{
						"name":             "vg0",
						"physical_volumes": []interface{}{"/dev/sdb", "/dev/sdc"},
						"logical_volumes":  []interface{}{lv},
					},
				},
			}

			p, err := Decode("sizing", item)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.LvmVolumeGroups[0].LogicalVolumes[0].Sizing)
		})
	}
}

func TestDecode_EBS(t *testing.T) {
	item := map[string]interface{}{
		"ebs_volumes": []interface{}{
			map[string]interface{}{"name": "db", "size": float64(100), "device": "/dev/sdf", "volume_type": "gp3"},
			map[string]interface{}{"name": "wal", "size": "1.5GiB", "device": "/dev/sdg", "encrypted": true},
			map[string]interface{}{"name": "raw", "size": "20", "device": "/dev/sdh"},
		},
	}

	p, err := Decode("ebs", item)
	require.NoError(t, err)
	require.True(t, p.HasEBS())
	require.Len(t, p.EbsVolumes.Volumes, 3)

	assert.Equal(t, int32(100), p.EbsVolumes.Volumes[0].SizeGiB)
	assert.Equal(t, "gp3", p.EbsVolumes.Volumes[0].VolumeType)
	assert.Equal(t, int32(2), p.EbsVolumes.Volumes[1].SizeGiB)
	assert.True(t, p.EbsVolumes.Volumes[1].Encrypted)
	assert.Equal(t, int32(20), p.EbsVolumes.Volumes[2].SizeGiB)
}

func TestDecode_IDMismatch(t *testing.T) {
	_, err := Decode("web", map[string]interface{}{"id": "db"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `declares id "db"`)
}

func TestDecode_BadSize(t *testing.T) {
	item := map[string]interface{}{
		"ebs_volumes": []interface{}{
			map[string]interface{}{"name": "db", "size": "lots", "device": "/dev/sdf"},
		},
	}
	_, err := Decode("ebs", item)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ebs_volumes[0].size")
}

func TestParse_InvalidDocument(t *testing.T) {
	_, err := Parse("broken", []byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to parse volume plan "broken"`)
}
