package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/mapstructure"
	"sigs.k8s.io/yaml"
)

// rawPlan mirrors the data-bag item layout. Scalars are weakly typed so a
// single device string or a numeric stripe size decode the same way the
// original recipes accepted them.
type rawPlan struct {
	ID              string        `mapstructure:"id"`
	EbsVolumes      []rawEbs      `mapstructure:"ebs_volumes"`
	LvmVolumeGroups []rawLvmGroup `mapstructure:"lvm_volume_groups"`
}

type rawEbs struct {
	Name             string            `mapstructure:"name"`
	Size             interface{}       `mapstructure:"size"`
	Device           string            `mapstructure:"device"`
	VolumeType       string            `mapstructure:"volume_type"`
	IOPS             int32             `mapstructure:"iops"`
	Throughput       int32             `mapstructure:"throughput"`
	SnapshotID       string            `mapstructure:"snapshot_id"`
	AvailabilityZone string            `mapstructure:"availability_zone"`
	Encrypted        bool              `mapstructure:"encrypted"`
	KMSKeyID         string            `mapstructure:"kms_key_id"`
	Tags             map[string]string `mapstructure:"tags"`
}

type rawLvmGroup struct {
	Name            string       `mapstructure:"name"`
	PhysicalVolumes []string     `mapstructure:"physical_volumes"`
	LogicalVolumes  []rawLvmPart `mapstructure:"logical_volumes"`
}

type rawLvmPart struct {
	Name           string   `mapstructure:"name"`
	Filesystem     string   `mapstructure:"filesystem"`
	FilesystemOpts string   `mapstructure:"filesystem_opts"`
	Stripes        int      `mapstructure:"stripes"`
	StripeSize     string   `mapstructure:"stripe_size"`
	Mirror         int      `mapstructure:"mirror"`
	CoreLog        bool     `mapstructure:"corelog"`
	LogicalExtents string   `mapstructure:"logical_extents"`
	Mount          string   `mapstructure:"mount"`
	MountOpts      []string `mapstructure:"mount_opts"`
}

// Parse decodes a JSON or YAML plan item registered under name.
func Parse(name string, data []byte) (*VolumePlan, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse volume plan %q: %w", name, err)
	}
	return Decode(name, raw)
}

// Decode converts an untyped plan item into a VolumePlan and validates it.
// An item without an id takes the registry name; a differing id is an error.
func Decode(name string, item map[string]interface{}) (*VolumePlan, error) {
	var raw rawPlan
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(item); err != nil {
		return nil, fmt.Errorf("failed to decode volume plan %q: %w", name, err)
	}

	if raw.ID == "" {
		raw.ID = name
	}
	if raw.ID != name {
		return nil, fmt.Errorf("volume plan %q declares id %q", name, raw.ID)
	}

	p := &VolumePlan{ID: raw.ID}

	if len(raw.EbsVolumes) > 0 {
		p.EbsVolumes = &EbsVolumeSet{}
		for i, r := range raw.EbsVolumes {
			size, err := parseSize(r.Size)
			if err != nil {
				return nil, fmt.Errorf("volume plan %q: ebs_volumes[%d].size: %w", name, i, err)
			}
			p.EbsVolumes.Volumes = append(p.EbsVolumes.Volumes, EbsVolume{
				Name:             r.Name,
				SizeGiB:          size,
				Device:           r.Device,
				VolumeType:       r.VolumeType,
				IOPS:             r.IOPS,
				Throughput:       r.Throughput,
				SnapshotID:       r.SnapshotID,
				AvailabilityZone: r.AvailabilityZone,
				Encrypted:        r.Encrypted,
				KMSKeyID:         r.KMSKeyID,
				Tags:             r.Tags,
			})
		}
	}

	for _, rg := range raw.LvmVolumeGroups {
		group := LvmVolumeGroup{
			Name:            rg.Name,
			PhysicalVolumes: rg.PhysicalVolumes,
		}
		for _, rl := range rg.LogicalVolumes {
			group.LogicalVolumes = append(group.LogicalVolumes, decodeLogicalVolume(rl))
		}
		p.LvmVolumeGroups = append(p.LvmVolumeGroups, group)
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("volume plan %q is invalid: %w", name, err)
	}
	return p, nil
}

func decodeLogicalVolume(r rawLvmPart) LogicalVolume {
	lv := LogicalVolume{
		Name:           r.Name,
		Filesystem:     r.Filesystem,
		FilesystemOpts: r.FilesystemOpts,
		Sizing:         resolveSizing(r),
		LogicalExtents: r.LogicalExtents,
		Mount:          r.Mount,
		MountOpts:      strings.Join(r.MountOpts, ","),
	}
	if lv.Filesystem == "" {
		lv.Filesystem = DefaultFilesystem
	}
	return lv
}

// resolveSizing picks the allocation policy. A mirror count wins over any
// stripe settings on the same volume.
func resolveSizing(r rawLvmPart) Sizing {
	switch {
	case r.Mirror > 0:
		return Mirrored{Mirrors: r.Mirror, CoreLog: r.CoreLog}
	case r.Stripes > 0:
		return Striped{Stripes: r.Stripes, StripeSize: r.StripeSize}
	default:
		return Linear{}
	}
}

// parseSize accepts a GiB count or a humanized size ("100GiB", "1TB") and
// returns whole GiB, rounding up.
func parseSize(v interface{}) (int32, error) {
	var gib float64
	switch s := v.(type) {
	case nil:
		return 0, nil
	case float64:
		gib = s
	case int:
		gib = float64(s)
	case int64:
		gib = float64(s)
	case string:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			gib = n
			break
		}
		bytes, err := humanize.ParseBytes(s)
		if err != nil {
			return 0, err
		}
		gib = float64(bytes) / float64(humanize.GiByte)
	default:
		return 0, fmt.Errorf("unsupported size %v", v)
	}
	if gib > math.MaxInt32 {
		return 0, fmt.Errorf("size %v is too large", v)
	}
	return int32(math.Ceil(gib)), nil
}
