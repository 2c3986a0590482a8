package ebs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/volplan/internal/plan"
	"github.com/imamik/volplan/internal/util/naming"
	"github.com/imamik/volplan/internal/util/retry"
)

// VolumeResult reports what happened to one requested volume.
type VolumeResult struct {
	Name     string
	VolumeID string
	Created  bool
	Attached bool // attached during this call
}

// Changed reports whether the volume was created or attached.
func (r VolumeResult) Changed() bool {
	return r.Created || r.Attached
}

// CreateEBSVolumes makes sure every volume exists and is attached to the
// local instance. Results are returned for the volumes handled before any
// error.
func (c *Client) CreateEBSVolumes(ctx context.Context, creds Credentials, volumes []plan.EbsVolume) ([]VolumeResult, error) {
	if len(volumes) == 0 {
		return nil, nil
	}

	api, inst, err := c.client(ctx, creds)
	if err != nil {
		return nil, err
	}

	results := make([]VolumeResult, 0, len(volumes))
	for _, v := range volumes {
		res, err := c.declareVolume(ctx, api, inst, v)
		if err != nil {
			return results, fmt.Errorf("ebs volume %s: %w", v.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (c *Client) declareVolume(ctx context.Context, api API, inst *Instance, v plan.EbsVolume) (VolumeResult, error) {
	res := VolumeResult{Name: v.Name}

	az := v.AvailabilityZone
	if az == "" {
		az = inst.AvailabilityZone
	}

	vol, err := findVolume(ctx, api, v.Name, az)
	if err != nil {
		return res, err
	}

	if vol == nil {
		out, err := api.CreateVolume(ctx, createVolumeInput(v, az))
		if err != nil {
			return res, fmt.Errorf("failed to create volume: %w", err)
		}
		res.Created = true
		vol = &types.Volume{VolumeId: out.VolumeId, State: types.VolumeStateCreating}
	}
	res.VolumeID = aws.ToString(vol.VolumeId)

	// A volume left behind by an interrupted run may still be creating.
	if vol.State == types.VolumeStateCreating {
		vol, err = c.waitForVolume(ctx, api, res.VolumeID, c.timeouts.EBSAvailable, func(vol *types.Volume) bool {
			return vol.State == types.VolumeStateAvailable
		})
		if err != nil {
			return res, fmt.Errorf("volume %s did not become available: %w", res.VolumeID, err)
		}
	}

	att := attachmentFor(vol, inst.ID)
	switch {
	case att != nil && att.State == types.VolumeAttachmentStateAttached:
		return res, nil
	case att == nil && len(vol.Attachments) > 0:
		return res, attachedElsewhere(vol)
	case att == nil:
		_, err = api.AttachVolume(ctx, &ec2.AttachVolumeInput{
			Device:     aws.String(v.Device),
			InstanceId: aws.String(inst.ID),
			VolumeId:   aws.String(res.VolumeID),
		})
		switch {
		case err == nil:
			res.Attached = true
		case isVolumeInUseError(err):
			// Lost an attach race; only an attachment to this instance is fine.
			current, err := describeVolume(ctx, api, res.VolumeID)
			if err != nil {
				return res, err
			}
			if current != nil && attachmentFor(current, inst.ID) == nil && len(current.Attachments) > 0 {
				return res, attachedElsewhere(current)
			}
		default:
			return res, fmt.Errorf("failed to attach volume %s at %s: %w", res.VolumeID, v.Device, err)
		}
	}

	_, err = c.waitForVolume(ctx, api, res.VolumeID, c.timeouts.EBSAttach, func(vol *types.Volume) bool {
		att := attachmentFor(vol, inst.ID)
		return att != nil && att.State == types.VolumeAttachmentStateAttached
	})
	if err != nil {
		return res, fmt.Errorf("volume %s did not attach: %w", res.VolumeID, err)
	}
	return res, nil
}

// ErrAttachedElsewhere is returned when a volume is attached to another
// instance.
var ErrAttachedElsewhere = errors.New("volume is attached to another instance")

func attachedElsewhere(vol *types.Volume) error {
	return fmt.Errorf("%w: volume %s is attached to instance %s", ErrAttachedElsewhere,
		aws.ToString(vol.VolumeId), aws.ToString(vol.Attachments[0].InstanceId))
}

func attachmentFor(vol *types.Volume, instanceID string) *types.VolumeAttachment {
	for i := range vol.Attachments {
		if aws.ToString(vol.Attachments[i].InstanceId) == instanceID {
			return &vol.Attachments[i]
		}
	}
	return nil
}

// findVolume returns the live volume tagged with name in az, if any.
func findVolume(ctx context.Context, api API, name, az string) (*types.Volume, error) {
	out, err := api.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
		Filters: []types.Filter{
			{Name: aws.String("tag:" + naming.EBSNameTag), Values: []string{name}},
			{Name: aws.String("availability-zone"), Values: []string{az}},
			{Name: aws.String("status"), Values: []string{
				string(types.VolumeStateCreating),
				string(types.VolumeStateAvailable),
				string(types.VolumeStateInUse),
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe volumes: %w", err)
	}
	if len(out.Volumes) == 0 {
		return nil, nil
	}
	if len(out.Volumes) > 1 {
		return nil, fmt.Errorf("found %d volumes tagged %s=%s in %s", len(out.Volumes), naming.EBSNameTag, name, az)
	}
	return &out.Volumes[0], nil
}

// describeVolume returns the volume with id, or nil when it is not visible.
func describeVolume(ctx context.Context, api API, id string) (*types.Volume, error) {
	out, err := api.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{VolumeIds: []string{id}})
	if err != nil {
		if isNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to describe volume %s: %w", id, err)
	}
	if len(out.Volumes) == 0 {
		return nil, nil
	}
	return &out.Volumes[0], nil
}

func createVolumeInput(v plan.EbsVolume, az string) *ec2.CreateVolumeInput {
	input := &ec2.CreateVolumeInput{
		AvailabilityZone: aws.String(az),
		TagSpecifications: []types.TagSpecification{{
			ResourceType: types.ResourceTypeVolume,
			Tags:         volumeTags(v),
		}},
	}
	if v.SizeGiB > 0 {
		input.Size = aws.Int32(v.SizeGiB)
	}
	if v.VolumeType != "" {
		input.VolumeType = types.VolumeType(v.VolumeType)
	}
	if v.IOPS > 0 {
		input.Iops = aws.Int32(v.IOPS)
	}
	if v.Throughput > 0 {
		input.Throughput = aws.Int32(v.Throughput)
	}
	if v.SnapshotID != "" {
		input.SnapshotId = aws.String(v.SnapshotID)
	}
	if v.Encrypted {
		input.Encrypted = aws.Bool(true)
	}
	if v.KMSKeyID != "" {
		input.KmsKeyId = aws.String(v.KMSKeyID)
	}
	return input
}

// volumeTags returns the user tags plus the identifying name tag, sorted by
// key.
func volumeTags(v plan.EbsVolume) []types.Tag {
	tags := []types.Tag{
		{Key: aws.String(naming.EBSNameTag), Value: aws.String(v.Name)},
		{Key: aws.String("Name"), Value: aws.String(v.Name)},
	}
	keys := make([]string, 0, len(v.Tags))
	for k := range v.Tags {
		if k == naming.EBSNameTag || k == "Name" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tags = append(tags, types.Tag{Key: aws.String(k), Value: aws.String(v.Tags[k])})
	}
	return tags
}

// waitForVolume polls the volume until done reports true.
func (c *Client) waitForVolume(ctx context.Context, api API, id string, timeout time.Duration, done func(*types.Volume) bool) (*types.Volume, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var current *types.Volume
	err := retry.Until(ctx, func() (bool, error) {
		vol, err := describeVolume(ctx, api, id)
		if err != nil {
			return false, err
		}
		// Freshly created volumes can be invisible for a moment.
		if vol == nil {
			return false, nil
		}
		current = vol
		if current.State == types.VolumeStateError {
			return false, retry.Fatal(errors.New("volume entered error state"))
		}
		return done(current), nil
	},
		retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
	)
	if err != nil {
		return nil, err
	}
	return current, nil
}
