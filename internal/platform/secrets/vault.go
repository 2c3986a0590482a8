package secrets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hashicorp/vault/api"
)

// VaultProvider reads secrets from a Vault KV v2 mount. All but the last
// path element name the secret; the last element is the key inside it.
type VaultProvider struct {
	client *api.Client
	mount  string

	mu    sync.Mutex
	cache map[string]map[string]interface{}
}

// NewVaultProvider creates a provider for the Vault server at address.
func NewVaultProvider(address, mount, token string) (*VaultProvider, error) {
	cfg := api.DefaultConfig()
	if cfg.Error != nil {
		return nil, fmt.Errorf("failed to configure vault client: %w", cfg.Error)
	}
	cfg.Address = address

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	if token != "" {
		client.SetToken(token)
	}

	return &VaultProvider{
		client: client,
		mount:  strings.Trim(mount, "/"),
		cache:  make(map[string]map[string]interface{}),
	}, nil
}

// Secret implements Provider.
func (p *VaultProvider) Secret(ctx context.Context, path ...string) (string, bool, error) {
	if len(path) < 2 {
		return "", false, fmt.Errorf("vault secret path %q needs a secret and a key", strings.Join(path, "/"))
	}
	secretPath := strings.Join(path[:len(path)-1], "/")
	key := path[len(path)-1]

	data, err := p.read(ctx, secretPath)
	if err != nil {
		return "", false, err
	}
	return lookup(data, []string{key})
}

func (p *VaultProvider) read(ctx context.Context, secretPath string) (map[string]interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if data, ok := p.cache[secretPath]; ok {
		return data, nil
	}

	secret, err := p.client.Logical().ReadWithContext(ctx, fmt.Sprintf("%s/data/%s", p.mount, secretPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read vault secret %s: %w", secretPath, err)
	}

	var data map[string]interface{}
	if secret != nil && secret.Data != nil {
		data, _ = secret.Data["data"].(map[string]interface{})
	}
	p.cache[secretPath] = data
	return data, nil
}
