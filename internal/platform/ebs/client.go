package ebs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/ec2/imds"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/smithy-go"

	"github.com/imamik/volplan/internal/config"
	"github.com/imamik/volplan/internal/util/retry"
)

// Credentials are the static AWS keys used for EC2 calls.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
}

// API is the subset of the EC2 client used here.
type API interface {
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	CreateVolume(ctx context.Context, params *ec2.CreateVolumeInput, optFns ...func(*ec2.Options)) (*ec2.CreateVolumeOutput, error)
	AttachVolume(ctx context.Context, params *ec2.AttachVolumeInput, optFns ...func(*ec2.Options)) (*ec2.AttachVolumeOutput, error)
}

// MetadataAPI is the subset of the instance metadata client used here.
type MetadataAPI interface {
	GetInstanceIdentityDocument(ctx context.Context, params *imds.GetInstanceIdentityDocumentInput, optFns ...func(*imds.Options)) (*imds.GetInstanceIdentityDocumentOutput, error)
}

// APIFactory builds an EC2 client for the given credentials and region.
type APIFactory func(ctx context.Context, creds Credentials, region, endpoint string) (API, error)

// Instance identifies the EC2 instance volumes are attached to.
type Instance struct {
	ID               string
	AvailabilityZone string
	Region           string
}

// Client provisions EBS volumes for the local instance.
type Client struct {
	cfg      config.AWSConfig
	timeouts *config.Timeouts
	newAPI   APIFactory
	metadata MetadataAPI

	mu       sync.Mutex
	instance *Instance
	api      API
	apiCreds Credentials
}

// Option configures a Client.
type Option func(*Client)

// WithAPIFactory replaces how EC2 clients are built.
func WithAPIFactory(f APIFactory) Option {
	return func(c *Client) {
		c.newAPI = f
	}
}

// WithMetadata replaces the instance metadata client.
func WithMetadata(m MetadataAPI) Option {
	return func(c *Client) {
		c.metadata = m
	}
}

// NewClient creates an EBS client. Instance fields left empty in cfg are
// discovered from the instance metadata service on first use.
func NewClient(cfg config.AWSConfig, timeouts *config.Timeouts, opts ...Option) *Client {
	if timeouts == nil {
		timeouts = config.LoadTimeouts()
	}
	c := &Client{
		cfg:      cfg,
		timeouts: timeouts,
		newAPI:   NewEC2API,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metadata == nil {
		c.metadata = imds.New(imds.Options{})
	}
	return c
}

// NewEC2API creates an EC2 client authenticated with static credentials.
func NewEC2API(ctx context.Context, creds Credentials, region, endpoint string) (API, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(creds.AccessKeyID, creds.SecretAccessKey, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return ec2.NewFromConfig(cfg, func(o *ec2.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// Instance returns the instance volumes are attached to.
func (c *Client) Instance(ctx context.Context) (*Instance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.instanceLocked(ctx)
}

func (c *Client) instanceLocked(ctx context.Context) (*Instance, error) {
	if c.instance != nil {
		return c.instance, nil
	}

	inst := &Instance{
		ID:               c.cfg.InstanceID,
		AvailabilityZone: c.cfg.AvailabilityZone,
		Region:           c.cfg.Region,
	}
	if inst.ID == "" || inst.AvailabilityZone == "" || inst.Region == "" {
		// IMDS can be briefly unreachable while the instance boots.
		var doc *imds.GetInstanceIdentityDocumentOutput
		err := retry.WithExponentialBackoff(ctx, func() error {
			var err error
			doc, err = c.metadata.GetInstanceIdentityDocument(ctx, &imds.GetInstanceIdentityDocumentInput{})
			return err
		},
			retry.WithMaxRetries(c.timeouts.RetryMaxAttempts),
			retry.WithInitialDelay(c.timeouts.RetryInitialDelay),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to read instance identity document: %w", err)
		}
		if inst.ID == "" {
			inst.ID = doc.InstanceID
		}
		if inst.AvailabilityZone == "" {
			inst.AvailabilityZone = doc.AvailabilityZone
		}
		if inst.Region == "" {
			inst.Region = doc.Region
		}
	}

	c.instance = inst
	return inst, nil
}

func (c *Client) client(ctx context.Context, creds Credentials) (API, *Instance, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	inst, err := c.instanceLocked(ctx)
	if err != nil {
		return nil, nil, err
	}
	if c.api != nil && c.apiCreds == creds {
		return c.api, inst, nil
	}

	api, err := c.newAPI(ctx, creds, inst.Region, c.cfg.Endpoint)
	if err != nil {
		return nil, nil, err
	}
	c.api = api
	c.apiCreds = creds
	return api, inst, nil
}

// isNotFoundError checks if the error is an EC2 not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "InvalidVolume.NotFound"
	}
	return false
}

// isVolumeInUseError checks if an attach call found the volume already
// attached.
func isVolumeInUseError(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "VolumeInUse"
	}
	return false
}
