package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	db := filepath.Join(tmp, "state", "nested", "fraudshield.db")

	require.NoError(t, EnsureParentDir(db))

	fi, err := os.Stat(filepath.Dir(db))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	db := filepath.Join(t.TempDir(), "state", "fraudshield.db")

	require.NoError(t, EnsureParentDir(db))
	require.NoError(t, EnsureParentDir(db))
}

func TestEnsureParentDir_DSNForms(t *testing.T) {
	tmp := t.TempDir()

	require.NoError(t, EnsureParentDir(":memory:"))
	require.NoError(t, EnsureParentDir("file::memory:?cache=shared"))
	require.NoError(t, EnsureParentDir("fraudshield.db"))

	require.NoError(t, EnsureParentDir("file:"+filepath.Join(tmp, "uri", "x.db")+"?_pragma=busy_timeout(5000)"))
	_, err := os.Stat(filepath.Join(tmp, "uri"))
	require.NoError(t, err)
}

func TestEnsureParentDir_Error(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	require.Error(t, EnsureParentDir(filepath.Join(blocker, "sub", "x.db")))
}
