package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/dirtree/pkg/types"
	"github.com/stretchr/testify/require"
)

// Tree describes directory contents for WriteTree and ReadTree. Keys are
// slash separated paths relative to the root. A key ending in "/" is an
// empty directory, a value starting with "-> " is a symlink to the rest
// of the value, anything else is file content.
type Tree map[string]string

const linkPrefix = "-> "

// Link returns the Tree value for a symlink pointing at target
func Link(target string) string {
	return linkPrefix + target
}

// WriteTree materializes tree under root
func WriteTree(t *testing.T, fsys types.FS, root string, tree Tree) {
	t.Helper()

	require.NoError(t, fsys.MkdirAll(root, 0755))
	for rel, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(rel, "/")))
		if strings.HasSuffix(rel, "/") {
			require.NoError(t, fsys.MkdirAll(path, 0755), "mkdir %s", rel)
			continue
		}
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755), "mkdir parent of %s", rel)
		if strings.HasPrefix(content, linkPrefix) {
			require.NoError(t, fsys.Symlink(strings.TrimPrefix(content, linkPrefix), path), "symlink %s", rel)
			continue
		}
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644), "write %s", rel)
	}
}

// ReadTree snapshots everything under root in the WriteTree format,
// without following symlinks. Non-empty directories are implied by their
// contents and only empty ones get a "/" key.
func ReadTree(t *testing.T, fsys types.FS, root string) Tree {
	t.Helper()

	tree := Tree{}
	readInto(t, fsys, root, "", tree)
	return tree
}

func readInto(t *testing.T, fsys types.FS, dir, prefix string, tree Tree) {
	t.Helper()

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err, "readdir %s", dir)
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		rel := prefix + entry.Name()
		switch {
		case entry.Type()&fs.ModeSymlink != 0:
			target, err := fsys.Readlink(path)
			require.NoError(t, err, "readlink %s", path)
			tree[rel] = Link(target)
		case entry.IsDir():
			before := len(tree)
			readInto(t, fsys, path, rel+"/", tree)
			if len(tree) == before {
				tree[rel+"/"] = ""
			}
		default:
			content, err := fsys.ReadFile(path)
			require.NoError(t, err, "read %s", path)
			tree[rel] = string(content)
		}
	}
}

// RequireSymlinks skips the test when the OS refuses to create symlinks
// in a temporary directory (unprivileged Windows, some CI sandboxes).
func RequireSymlinks(t *testing.T) {
	t.Helper()

	dir := t.TempDir()
	if err := os.Symlink(dir, filepath.Join(dir, "probe")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

// AssertMissing fails when anything exists at path, symlinks included
func AssertMissing(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	_, err := fsys.Lstat(path)
	require.Error(t, err, "expected %s to be gone", path)
	require.True(t, os.IsNotExist(err), "unexpected error for %s: %v", path, err)
}
