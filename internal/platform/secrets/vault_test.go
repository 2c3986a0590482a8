package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVaultServer(t *testing.T, reads *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(reads, 1)
		assert.Equal(t, "test-token", r.Header.Get("X-Vault-Token"))

		switch r.URL.Path {
		case "/v1/secret/data/aws/volumes":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data": {"data": {"access_key_id": "AKIAEXAMPLE", "secret_access_key": "s3cr3t"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors": []}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVaultProvider(t *testing.T) {
	var reads int32
	srv := newVaultServer(t, &reads)

	p, err := NewVaultProvider(srv.URL, "/secret/", "test-token")
	require.NoError(t, err)
	ctx := context.Background()

	v, ok, err := p.Secret(ctx, "aws", "volumes", "access_key_id")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "AKIAEXAMPLE", v)

	v, ok, err = p.Secret(ctx, "aws", "volumes", "secret_access_key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "s3cr3t", v)

	assert.Equal(t, int32(1), atomic.LoadInt32(&reads), "secret should be read once")

	_, ok, err = p.Secret(ctx, "aws", "missing", "access_key_id")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVaultProvider_ShortPath(t *testing.T) {
	p, err := NewVaultProvider("http://127.0.0.1:1", "secret", "")
	require.NoError(t, err)

	_, _, err = p.Secret(context.Background(), "aws")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a secret and a key")
}
