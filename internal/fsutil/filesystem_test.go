package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(infos []fs.FileInfo) []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Name()
	}
	return out
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	m := NewMemoryFileSystem()
	mod := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.AddFile("/data/pass_b.bin", 2048, mod)
	m.AddFile("/data/pass_a.cadu", 1024, mod)
	m.AddFile("/data/archive/old.bin", 10, mod)
	m.AddFile("/other/skip.bin", 1, mod)

	infos, err := m.ReadDir("/data")
	require.NoError(t, err)
	assert.Equal(t, []string{"archive", "pass_a.cadu", "pass_b.bin"}, names(infos))

	assert.True(t, infos[0].IsDir())
	assert.Equal(t, int64(1024), infos[1].Size())
	assert.Equal(t, mod, infos[2].ModTime())
}

func TestMemoryFileSystem_ReadDirMissing(t *testing.T) {
	m := NewMemoryFileSystem()
	_, err := m.ReadDir("/nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_StatAndExists(t *testing.T) {
	m := NewMemoryFileSystem()
	m.MkdirAll("/data/empty")
	m.AddFile("/data/x.bin", 5, time.Time{})

	assert.True(t, m.Exists("/data"))
	assert.True(t, m.Exists("/data/empty"))
	assert.True(t, m.Exists("/data/x.bin"))
	assert.False(t, m.Exists("/data/y.bin"))

	info, err := m.Stat("/data/x.bin")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, fs.FileMode(0644), info.Mode())

	info, err = m.Stat("/data/empty")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOSFileSystem_ReadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.bin"), []byte("bb"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), []byte("a"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	var fsys FileSystem = OSFileSystem{}
	infos, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.bin", "b.bin", "sub"}, names(infos))

	assert.True(t, fsys.Exists(filepath.Join(dir, "a.bin")))
	assert.False(t, fsys.Exists(filepath.Join(dir, "missing.bin")))

	info, err := fsys.Stat(filepath.Join(dir, "b.bin"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Size())
}
