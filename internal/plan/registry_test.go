package plan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeItem(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestDirRegistry_List(t *testing.T) {
	dir := t.TempDir()
	writeItem(t, dir, "db-tier.json", dbTierJSON)
	writeItem(t, dir, "web.yaml", "lvm_volume_groups: []\n")
	writeItem(t, dir, "web.yml", "lvm_volume_groups: []\n")
	writeItem(t, dir, "README.md", "not a plan")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o750))

	names, err := NewDirRegistry(dir).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"db-tier", "web"}, names)
}

func TestDirRegistry_ListMissingDir(t *testing.T) {
	_, err := NewDirRegistry(filepath.Join(t.TempDir(), "absent")).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read plan registry")
}

func TestDirRegistry_Get(t *testing.T) {
	dir := t.TempDir()
	writeItem(t, dir, "db-tier.json", dbTierJSON)
	reg := NewDirRegistry(dir)

	p, err := reg.Get(context.Background(), "db-tier")
	require.NoError(t, err)
	assert.Equal(t, "db-tier", p.ID)

	_, err = reg.Get(context.Background(), "absent")
	assert.True(t, errors.Is(err, ErrPlanNotFound))

	_, err = reg.Get(context.Background(), "../db-tier")
	assert.True(t, errors.Is(err, ErrPlanNotFound))
}

func TestStaticRegistry(t *testing.T) {
	reg := StaticRegistry{
		"b": {ID: "b"},
		"a": {ID: "a"},
	}

	names, err := reg.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	p, err := reg.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", p.ID)

	_, err = reg.Get(context.Background(), "c")
	assert.True(t, errors.Is(err, ErrPlanNotFound))
}
