package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
aws:
  volumes:
    access_key_id: AKIAEXAMPLE
    secret_access_key: ""
    port: 8200
`), 0o600))

	p := NewFileProvider(path)
	ctx := context.Background()

	v, ok, err := p.Secret(ctx, "aws", "volumes", "access_key_id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "AKIAEXAMPLE", v)

	v, ok, err = p.Secret(ctx, "aws", "volumes", "secret_access_key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, v)

	v, ok, err = p.Secret(ctx, "aws", "volumes", "port")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "8200", v)

	_, ok, err = p.Secret(ctx, "aws", "s3", "access_key_id")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = p.Secret(ctx, "aws", "volumes", "access_key_id", "deeper")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = p.Secret(ctx, "aws", "volumes")
	assert.Error(t, err)

	_, _, err = p.Secret(ctx)
	assert.Error(t, err)
}

func TestFileProvider_MissingFile(t *testing.T) {
	p := NewFileProvider(filepath.Join(t.TempDir(), "absent.yaml"))

	_, ok, err := p.Secret(context.Background(), "aws", "volumes", "access_key_id")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileProvider_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("aws: ["), 0o600))

	_, _, err := NewFileProvider(path).Secret(context.Background(), "aws")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse secrets file")
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "AWS_VOLUMES_ACCESS_KEY_ID", EnvName("", "aws", "volumes", "access_key_id"))
	assert.Equal(t, "VOLPLAN_AWS_VOLUMES_SECRET_ACCESS_KEY", EnvName("volplan", "aws", "volumes", "secret_access_key"))
	assert.Equal(t, "AWS_VOLUMES_KEY_ID", EnvName("", "aws", "volumes", "key-id"))
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("AWS_VOLUMES_ACCESS_KEY_ID", "AKIAEXAMPLE")
	p := NewEnvProvider("")
	ctx := context.Background()

	v, ok, err := p.Secret(ctx, "aws", "volumes", "access_key_id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "AKIAEXAMPLE", v)

	_, ok, err = p.Secret(ctx, "aws", "volumes", "never_set_for_tests")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = p.Secret(ctx)
	assert.Error(t, err)
}

func TestStaticProvider(t *testing.T) {
	p := StaticProvider{"aws.volumes.access_key_id": "AKIA"}

	v, ok, err := p.Secret(context.Background(), "aws", "volumes", "access_key_id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "AKIA", v)

	_, ok, err = p.Secret(context.Background(), "aws", "volumes", "secret_access_key")
	require.NoError(t, err)
	assert.False(t, ok)
}
