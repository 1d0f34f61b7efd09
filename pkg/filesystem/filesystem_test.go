// TEST TYPE: Unit Test
// DEPENDENCIES: afero (memory and OS backends)
// PURPOSE: Verify both types.FS implementations behave the same for the calls the tree operations make

package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dirtree/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]struct {
	fs   types.FS
	root string
} {
	t.Helper()
	return map[string]struct {
		fs   types.FS
		root string
	}{
		"os":           {fs: NewOS(), root: t.TempDir()},
		"afero-os":     {fs: NewAferoFS(afero.NewOsFs()), root: t.TempDir()},
		"afero-memory": {fs: NewMemory(), root: "/work"},
	}
}

func TestFSBasicOperations(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fsys := b.fs
			testFile := filepath.Join(b.root, "test.txt")
			testContent := []byte("hello world")

			require.NoError(t, fsys.MkdirAll(b.root, 0755))
			require.NoError(t, fsys.WriteFile(testFile, testContent, 0644))

			info, err := fsys.Stat(testFile)
			require.NoError(t, err)
			assert.Equal(t, "test.txt", info.Name())
			assert.Equal(t, int64(len(testContent)), info.Size())

			content, err := fsys.ReadFile(testFile)
			require.NoError(t, err)
			assert.Equal(t, testContent, content)

			subDir := filepath.Join(b.root, "sub", "dir")
			require.NoError(t, fsys.MkdirAll(subDir, 0755))

			entries, err := fsys.ReadDir(b.root)
			require.NoError(t, err)
			assert.Len(t, entries, 2) // test.txt and sub/

			moved := filepath.Join(b.root, "sub", "moved.txt")
			require.NoError(t, fsys.Rename(testFile, moved))
			_, err = fsys.Stat(testFile)
			assert.True(t, os.IsNotExist(err))

			require.NoError(t, fsys.Remove(moved))
			_, err = fsys.Stat(moved)
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestFSOpenCreate(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			fsys := b.fs
			require.NoError(t, fsys.MkdirAll(b.root, 0755))
			path := filepath.Join(b.root, "data.bin")

			w, err := fsys.Create(path, 0600)
			require.NoError(t, err)
			_, err = io.WriteString(w, "payload")
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := fsys.Open(path)
			require.NoError(t, err)
			defer func() { _ = r.Close() }()
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "payload", string(got))

			// Create truncates existing content
			w, err = fsys.Create(path, 0600)
			require.NoError(t, err)
			_, err = io.WriteString(w, "x")
			require.NoError(t, err)
			require.NoError(t, w.Close())
			got, err = fsys.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "x", string(got))
		})
	}
}

func TestAferoReadFileOnDirectory(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/dir", 0755))

	_, err := fsys.ReadFile("/dir")
	assert.Error(t, err)
}

func TestAferoRealPath(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/a/b", 0755))

	got, err := fsys.RealPath("/a/b/../b/")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/a/b"), got)

	_, err = fsys.RealPath("/missing")
	assert.True(t, os.IsNotExist(err))
}

func TestOSRealPathResolvesSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target")
	require.NoError(t, os.Mkdir(target, 0755))
	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	fsys := NewOS()
	got, err := fsys.RealPath(link)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	dest, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, dest)
}

func TestAferoMemorySymlinkUnsupported(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, fsys.MkdirAll("/a", 0755))

	err := fsys.Symlink("/a", "/b")
	assert.Error(t, err)
	_, err = fsys.Readlink("/b")
	assert.Error(t, err)
}
