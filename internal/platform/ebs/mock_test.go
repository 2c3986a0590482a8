package ebs

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// MockAPI is a mock implementation of API.
type MockAPI struct {
	DescribeVolumesFunc func(ctx context.Context, params *ec2.DescribeVolumesInput) (*ec2.DescribeVolumesOutput, error)
	CreateVolumeFunc    func(ctx context.Context, params *ec2.CreateVolumeInput) (*ec2.CreateVolumeOutput, error)
	AttachVolumeFunc    func(ctx context.Context, params *ec2.AttachVolumeInput) (*ec2.AttachVolumeOutput, error)
}

// DescribeVolumes implements API.
func (m *MockAPI) DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, _ ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	if m.DescribeVolumesFunc != nil {
		return m.DescribeVolumesFunc(ctx, params)
	}
	return &ec2.DescribeVolumesOutput{}, nil
}

// CreateVolume implements API.
func (m *MockAPI) CreateVolume(ctx context.Context, params *ec2.CreateVolumeInput, _ ...func(*ec2.Options)) (*ec2.CreateVolumeOutput, error) {
	if m.CreateVolumeFunc != nil {
		return m.CreateVolumeFunc(ctx, params)
	}
	return &ec2.CreateVolumeOutput{}, nil
}

// AttachVolume implements API.
func (m *MockAPI) AttachVolume(ctx context.Context, params *ec2.AttachVolumeInput, _ ...func(*ec2.Options)) (*ec2.AttachVolumeOutput, error) {
	if m.AttachVolumeFunc != nil {
		return m.AttachVolumeFunc(ctx, params)
	}
	return &ec2.AttachVolumeOutput{}, nil
}

// MockMetadata is a mock implementation of MetadataAPI.
type MockMetadata struct {
	Document imds.InstanceIdentityDocument
	Err      error
	// FailCalls limits Err to the first calls. Zero fails every call.
	FailCalls int
	Calls     int
}

// GetInstanceIdentityDocument implements MetadataAPI.
func (m *MockMetadata) GetInstanceIdentityDocument(_ context.Context, _ *imds.GetInstanceIdentityDocumentInput, _ ...func(*imds.Options)) (*imds.GetInstanceIdentityDocumentOutput, error) {
	m.Calls++
	if m.Err != nil && (m.FailCalls == 0 || m.Calls <= m.FailCalls) {
		return nil, m.Err
	}
	return &imds.GetInstanceIdentityDocumentOutput{InstanceIdentityDocument: m.Document}, nil
}
