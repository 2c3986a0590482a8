package lvm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"k8s.io/utils/exec"

	"github.com/imamik/volplan/internal/plan"
	"github.com/imamik/volplan/internal/util/command"
)

// DefaultBinary is the lvm2 multi-call binary.
const DefaultBinary = "/sbin/lvm"

// ErrInvalidInput is returned when a declaration is missing required fields.
var ErrInvalidInput = errors.New("invalid input")

// PhysicalVolume is a row of the pvs report.
type PhysicalVolume struct {
	Name   string `json:"pv_name"`
	VGName string `json:"vg_name"`
}

// VolumeGroup is a row of the vgs report.
type VolumeGroup struct {
	Name string `json:"vg_name"`
}

// LogicalVolume is a row of the lvs report.
type LogicalVolume struct {
	Name   string `json:"lv_name"`
	VGName string `json:"vg_name"`
}

// Client runs lvm2 commands.
type Client struct {
	binary  string
	runner  *command.Runner
	resolve func(string) (string, error)
}

// Option configures a Client.
type Option func(*Client)

// WithBinary overrides the lvm binary path.
func WithBinary(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithExec sets the command executor.
func WithExec(e exec.Interface) Option {
	return func(c *Client) {
		c.runner = command.NewRunner(e)
	}
}

// NewClient creates an lvm2 client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		binary:  DefaultBinary,
		runner:  command.NewRunner(nil),
		resolve: filepath.EvalSymlinks,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPhysicalVolumes reports every physical volume on the host.
func (c *Client) ListPhysicalVolumes(ctx context.Context) ([]PhysicalVolume, error) {
	out, err := c.run(ctx, "pvs", "--reportformat=json", "--options=pv_name,vg_name")
	if err != nil {
		return nil, err
	}
	return parseReport[PhysicalVolume](out, "pv")
}

// ListVolumeGroups reports every volume group on the host.
func (c *Client) ListVolumeGroups(ctx context.Context) ([]VolumeGroup, error) {
	out, err := c.run(ctx, "vgs", "--reportformat=json", "--options=vg_name")
	if err != nil {
		return nil, err
	}
	return parseReport[VolumeGroup](out, "vg")
}

// ListLogicalVolumes reports the logical volumes of a volume group.
func (c *Client) ListLogicalVolumes(ctx context.Context, group string) ([]LogicalVolume, error) {
	out, err := c.run(ctx, "lvs", "--reportformat=json", "--options=lv_name,vg_name", group)
	if err != nil {
		return nil, err
	}
	return parseReport[LogicalVolume](out, "lv")
}

// DeclarePhysicalVolumes initializes every device that is not a physical
// volume yet. Devices are compared after resolving symlinks.
func (c *Client) DeclarePhysicalVolumes(ctx context.Context, devices []string) (bool, error) {
	if len(devices) == 0 {
		return false, fmt.Errorf("%w: no devices", ErrInvalidInput)
	}

	pvs, err := c.ListPhysicalVolumes(ctx)
	if err != nil {
		return false, err
	}
	existing := make(map[string]bool, len(pvs))
	for _, pv := range pvs {
		existing[c.canonical(pv.Name)] = true
	}

	var missing []string
	for _, dev := range devices {
		key := c.canonical(dev)
		if existing[key] {
			continue
		}
		existing[key] = true
		missing = append(missing, dev)
	}
	if len(missing) == 0 {
		return false, nil
	}

	if _, err := c.run(ctx, append([]string{"pvcreate"}, missing...)...); err != nil {
		return false, err
	}
	return true, nil
}

// DeclareVolumeGroup creates the volume group from devices unless a group
// of that name exists. An existing group is not extended.
func (c *Client) DeclareVolumeGroup(ctx context.Context, name string, devices []string) (bool, error) {
	if name == "" || len(devices) == 0 {
		return false, fmt.Errorf("%w: volume group needs a name and devices", ErrInvalidInput)
	}

	vgs, err := c.ListVolumeGroups(ctx)
	if err != nil {
		return false, err
	}
	for _, vg := range vgs {
		if vg.Name == name {
			return false, nil
		}
	}

	if _, err := c.run(ctx, append([]string{"vgcreate", name}, devices...)...); err != nil {
		return false, err
	}
	return true, nil
}

// DeclareLogicalVolume creates lv in group unless it exists.
func (c *Client) DeclareLogicalVolume(ctx context.Context, group string, lv plan.LogicalVolume) (bool, error) {
	if group == "" || lv.Name == "" || lv.LogicalExtents == "" {
		return false, fmt.Errorf("%w: logical volume needs a group, a name and logical extents", ErrInvalidInput)
	}

	lvs, err := c.ListLogicalVolumes(ctx, group)
	if err != nil {
		return false, err
	}
	for _, existing := range lvs {
		if existing.Name == lv.Name {
			return false, nil
		}
	}

	if _, err := c.run(ctx, CreateArgs(group, lv)...); err != nil {
		return false, err
	}
	return true, nil
}

// CreateArgs returns the lvcreate command line for lv in group.
func CreateArgs(group string, lv plan.LogicalVolume) []string {
	args := []string{"lvcreate", "--yes", "-n", lv.Name, "-l", lv.LogicalExtents}
	switch s := lv.Sizing.(type) {
	case plan.Striped:
		args = append(args, "-i", strconv.Itoa(s.Stripes))
		if s.StripeSize != "" {
			args = append(args, "-I", s.StripeSize)
		}
	case plan.Mirrored:
		// An in-memory log is only available for the classic mirror type.
		if s.CoreLog {
			args = append(args, "--type", "mirror")
		}
		args = append(args, "-m", strconv.Itoa(s.Mirrors))
		if s.CoreLog {
			args = append(args, "--mirrorlog", "core")
		}
	}
	return append(args, group)
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	return c.runner.Run(ctx, c.binary, args...)
}

func (c *Client) canonical(dev string) string {
	if resolved, err := c.resolve(dev); err == nil {
		return resolved
	}
	return dev
}

func parseReport[T any](data []byte, key string) ([]T, error) {
	var report struct {
		Report []map[string][]T `json:"report"`
	}
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse lvm output: %w", err)
	}

	var rows []T
	for _, section := range report.Report {
		rows = append(rows, section[key]...)
	}
	return rows, nil
}
