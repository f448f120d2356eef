package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	t.Setenv("CKTEST_STR", "data/alt")
	t.Setenv("CKTEST_INT", " 7 ")
	t.Setenv("CKTEST_BADINT", "seven")

	assert.Equal(t, "data/alt", GetString("CKTEST_STR", "data"))
	assert.Equal(t, "data", GetString("CKTEST_UNSET", "data"))
	assert.Equal(t, 7, GetInt("CKTEST_INT", 1))
	assert.Equal(t, 1, GetInt("CKTEST_BADINT", 1))
}

func TestLoadSkipsMissingFile(t *testing.T) {
	require.NoError(t, Load(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("CKTEST_FROM_FILE=file\nCKTEST_PRESET=file\n"), 0o644))

	t.Setenv("CKTEST_PRESET", "process")
	t.Cleanup(func() { os.Unsetenv("CKTEST_FROM_FILE") })

	require.NoError(t, Load(path))
	assert.Equal(t, "file", GetString("CKTEST_FROM_FILE", ""))
	assert.Equal(t, "process", GetString("CKTEST_PRESET", ""))
}
