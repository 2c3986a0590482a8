package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for settings that cannot work.
func (c *Config) Validate() error {
	var errs []error

	for i, name := range c.Volumes.Plans {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("volumes.plans[%d] is empty", i))
		}
	}

	if c.Registry.Dir == "" {
		errs = append(errs, errors.New("registry.dir is required"))
	}

	switch c.Secrets.Backend {
	case SecretsBackendFile:
		if c.Secrets.File == "" {
			errs = append(errs, errors.New("secrets.file is required for the file backend"))
		}
	case SecretsBackendEnv:
	case SecretsBackendVault:
		if c.Secrets.Vault.Address == "" {
			errs = append(errs, errors.New("secrets.vault.address is required for the vault backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("secrets.backend %q is not one of file, env, vault", c.Secrets.Backend))
	}

	if c.AWS.InstanceID != "" && c.AWS.AvailabilityZone == "" {
		errs = append(errs, errors.New("aws.availability_zone is required when aws.instance_id is set"))
	}

	return errors.Join(errs...)
}
