package config

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = "volplan.yaml"

// Secrets backends.
const (
	SecretsBackendFile  = "file"
	SecretsBackendEnv   = "env"
	SecretsBackendVault = "vault"
)

// Config holds the node configuration.
type Config struct {
	Volumes    VolumesConfig    `yaml:"volumes"`
	Registry   RegistryConfig   `yaml:"registry"`
	Secrets    SecretsConfig    `yaml:"secrets"`
	AWS        AWSConfig        `yaml:"aws"`
	LVM        LVMConfig        `yaml:"lvm"`
	Filesystem FilesystemConfig `yaml:"filesystem"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// VolumesConfig lists the plans requested for this node.
type VolumesConfig struct {
	Plans []string `yaml:"plans"`
}

// RegistryConfig locates the plan registry.
type RegistryConfig struct {
	// Dir holds one plan item per file (<name>.json, <name>.yaml).
	Dir string `yaml:"dir"`
}

// SecretsConfig selects where credentials are read from.
type SecretsConfig struct {
	Backend string      `yaml:"backend"`
	File    string      `yaml:"file"`
	Vault   VaultConfig `yaml:"vault"`
}

// VaultConfig configures the Vault KV v2 backend.
type VaultConfig struct {
	Address string `yaml:"address"`
	Mount   string `yaml:"mount"`
	// TokenEnv names the environment variable holding the Vault token.
	TokenEnv string `yaml:"token_env"`
}

// AWSConfig configures EBS provisioning. Empty instance fields are
// discovered from the instance metadata service.
type AWSConfig struct {
	Region           string `yaml:"region"`
	InstanceID       string `yaml:"instance_id"`
	AvailabilityZone string `yaml:"availability_zone"`
	Endpoint         string `yaml:"endpoint"`
}

// LVMConfig locates the lvm2 binary.
type LVMConfig struct {
	Binary string `yaml:"binary"`
}

// FilesystemConfig configures mkfs/mount handling.
type FilesystemConfig struct {
	Fstab string `yaml:"fstab"`
}

// MetricsConfig configures metrics output.
type MetricsConfig struct {
	// Textfile is written in the node-exporter textfile collector format
	// after every run. Empty disables it.
	Textfile string `yaml:"textfile"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Registry.Dir == "" {
		c.Registry.Dir = "/etc/volplan/volume_plans"
	}
	if c.Secrets.Backend == "" {
		c.Secrets.Backend = SecretsBackendFile
	}
	if c.Secrets.Backend == SecretsBackendFile && c.Secrets.File == "" {
		c.Secrets.File = "/etc/volplan/secrets.yaml"
	}
	if c.Secrets.Vault.Mount == "" {
		c.Secrets.Vault.Mount = "secret"
	}
	if c.Secrets.Vault.TokenEnv == "" {
		c.Secrets.Vault.TokenEnv = "VAULT_TOKEN"
	}
	if c.LVM.Binary == "" {
		c.LVM.Binary = "/sbin/lvm"
	}
	if c.Filesystem.Fstab == "" {
		c.Filesystem.Fstab = "/etc/fstab"
	}
}
