package testing

import (
	"context"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/imamik/volplan/internal/plan"
	platformebs "github.com/imamik/volplan/internal/platform/ebs"
	"github.com/imamik/volplan/internal/platform/filesystem"
)

// MockVolumeManager is a mock implementation of the LVM volume manager.
type MockVolumeManager struct {
	mock.Mock
}

// DeclarePhysicalVolumes declares physical volumes.
func (m *MockVolumeManager) DeclarePhysicalVolumes(ctx context.Context, devices []string) (bool, error) {
	args := m.Called(ctx, devices)
	return args.Bool(0), args.Error(1)
}

// DeclareVolumeGroup declares a volume group.
func (m *MockVolumeManager) DeclareVolumeGroup(ctx context.Context, name string, devices []string) (bool, error) {
	args := m.Called(ctx, name, devices)
	return args.Bool(0), args.Error(1)
}

// DeclareLogicalVolume declares a logical volume.
func (m *MockVolumeManager) DeclareLogicalVolume(ctx context.Context, group string, lv plan.LogicalVolume) (bool, error) {
	args := m.Called(ctx, group, lv)
	return args.Bool(0), args.Error(1)
}

// MockFilesystemManager is a mock implementation of the filesystem manager.
type MockFilesystemManager struct {
	mock.Mock
}

// Format formats a device.
func (m *MockFilesystemManager) Format(ctx context.Context, device, fstype, opts string) error {
	args := m.Called(ctx, device, fstype, opts)
	return args.Error(0)
}

// DeclareMount mounts a filesystem.
func (m *MockFilesystemManager) DeclareMount(ctx context.Context, mnt filesystem.Mount) (bool, error) {
	args := m.Called(ctx, mnt)
	return args.Bool(0), args.Error(1)
}

// EnableMount persists a mount.
func (m *MockFilesystemManager) EnableMount(ctx context.Context, mnt filesystem.Mount) (bool, error) {
	args := m.Called(ctx, mnt)
	return args.Bool(0), args.Error(1)
}

// DeclareDirectory declares a directory.
func (m *MockFilesystemManager) DeclareDirectory(ctx context.Context, path string, mode os.FileMode, onlyIfAbsent bool) (bool, error) {
	args := m.Called(ctx, path, mode, onlyIfAbsent)
	return args.Bool(0), args.Error(1)
}

// MockCloudVolumes is a mock implementation of the cloud volume collaborator.
type MockCloudVolumes struct {
	mock.Mock
}

// CreateEBSVolumes creates EBS volumes.
func (m *MockCloudVolumes) CreateEBSVolumes(ctx context.Context, creds platformebs.Credentials, volumes []plan.EbsVolume) ([]platformebs.VolumeResult, error) {
	args := m.Called(ctx, creds, volumes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]platformebs.VolumeResult), args.Error(1)
}

// MockSecrets is a mock implementation of the secrets provider.
type MockSecrets struct {
	mock.Mock
}

// Secret returns a secret.
func (m *MockSecrets) Secret(ctx context.Context, path ...string) (string, bool, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Bool(1), args.Error(2)
}
