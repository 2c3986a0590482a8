package ebs

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/volplan/internal/plan"
	platformebs "github.com/imamik/volplan/internal/platform/ebs"
	"github.com/imamik/volplan/internal/platform/secrets"
	"github.com/imamik/volplan/internal/provisioning"
	"github.com/imamik/volplan/internal/util/naming"
)

const (
	phaseName = "ebs"

	// credentialsKey stores the resolved credentials in the volumes namespace.
	credentialsKey = "ebs_credentials"
)

// Secret paths of the AWS keys.
var (
	AccessKeyPath = []string{"aws", "volumes", "access_key_id"}
	SecretKeyPath = []string{"aws", "volumes", "secret_access_key"}
)

// CloudVolumes creates and attaches EBS volumes.
type CloudVolumes interface {
	CreateEBSVolumes(ctx context.Context, creds platformebs.Credentials, volumes []plan.EbsVolume) ([]platformebs.VolumeResult, error)
}

// Phase provisions the EBS volumes of a plan.
type Phase struct {
	secrets secrets.Provider
	cloud   CloudVolumes
}

// NewPhase creates the EBS phase.
func NewPhase(secretsProvider secrets.Provider, cloud CloudVolumes) *Phase {
	return &Phase{secrets: secretsProvider, cloud: cloud}
}

// Name implements provisioning.Phase.
func (p *Phase) Name() string {
	return phaseName
}

// Provision implements provisioning.Phase.
func (p *Phase) Provision(ctx *provisioning.Context) error {
	if ctx.Plan == nil || !ctx.Plan.HasEBS() {
		return nil
	}

	creds, err := p.credentials(ctx, ctx.State.Volumes())
	if err != nil {
		return err
	}

	results, err := p.cloud.CreateEBSVolumes(ctx, creds, ctx.Plan.EbsVolumes.Volumes)
	for _, res := range results {
		provisioning.ReportStep(ctx.Observer, provisioning.Step{
			Phase:     phaseName,
			Operation: "ebs",
			Resource:  naming.EBSVolume(res.Name),
			Changed:   res.Changed(),
			Fields:    map[string]string{"volume_id": res.VolumeID},
		})
	}
	if err != nil {
		provisioning.RecordOperation("ebs", provisioning.ResultFailed)
		return fmt.Errorf("failed to create EBS volumes: %w", err)
	}
	return nil
}

// credentials returns the AWS keys, reading them on first use.
func (p *Phase) credentials(ctx *provisioning.Context, ns *provisioning.Namespace) (platformebs.Credentials, error) {
	if v, ok := ns.Get(credentialsKey); ok {
		if creds, ok := v.(platformebs.Credentials); ok {
			return creds, nil
		}
	}

	accessKey, err := p.secret(ctx, AccessKeyPath)
	if err != nil {
		return platformebs.Credentials{}, err
	}
	secretKey, err := p.secret(ctx, SecretKeyPath)
	if err != nil {
		return platformebs.Credentials{}, err
	}

	var missing []string
	if accessKey == "" {
		missing = append(missing, strings.Join(AccessKeyPath, "."))
	}
	if secretKey == "" {
		missing = append(missing, strings.Join(SecretKeyPath, "."))
	}
	if len(missing) > 0 {
		mce := &provisioning.MissingCredentialsError{Missing: missing}
		provisioning.LogCredentialsMissing(ctx.Observer, phaseName, mce)
		return platformebs.Credentials{}, mce
	}

	creds := platformebs.Credentials{AccessKeyID: accessKey, SecretAccessKey: secretKey}
	ns.Set(credentialsKey, creds)
	return creds, nil
}

// secret returns the trimmed value at path, or "" when it is absent.
func (p *Phase) secret(ctx context.Context, path []string) (string, error) {
	value, ok, err := p.secrets.Secret(ctx, path...)
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", strings.Join(path, "."), err)
	}
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(value), nil
}
