package tree

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dirtree/pkg/errors"
	"github.com/arthur-debert/dirtree/pkg/logging"
	"github.com/arthur-debert/dirtree/pkg/types"
	"github.com/rs/zerolog"
)

// RemoveTree deletes the folder at path and everything beneath it.
//
// A missing path, or one that is not a directory, is a no-op. When path is
// a symlink to a directory only the link is removed. Inside the tree,
// symlinks are unlinked and never followed, so nothing outside the tree is
// touched.
//
// The first failing deletion is returned as ErrIO; whatever was removed
// before it stays removed.
func RemoveTree(fsys types.FS, path string) error {
	logger := logging.GetLogger("tree.remove")

	if path == "" {
		return nil
	}
	// A trailing slash makes Lstat follow a final symlink.
	path = filepath.Clean(path)

	info, err := fsys.Stat(path)
	if err != nil {
		if isMissing(err) {
			logger.Debug().Str("path", path).Msg("Nothing to remove")
			return nil
		}
		return errors.WrapIO(err, "stat", path)
	}
	if !info.IsDir() {
		logger.Debug().Str("path", path).Msg("Not a directory, nothing to remove")
		return nil
	}

	linfo, err := fsys.Lstat(path)
	if err != nil {
		return errors.WrapIO(err, "lstat", path)
	}
	if linfo.Mode()&fs.ModeSymlink != 0 {
		if err := fsys.Remove(path); err != nil {
			return errors.WrapIO(err, "unlink", path)
		}
		logger.Debug().Str("path", path).Msg("Removed directory symlink")
		return nil
	}

	if err := removeRecursive(fsys, path, logger); err != nil {
		return err
	}
	logger.Debug().Str("path", path).Msg("Removed tree")
	return nil
}

// removeRecursive empties dir depth first and then removes it. Entry types
// come from ReadDir, which does not follow links, so a link to a directory
// is removed like a file.
func removeRecursive(fsys types.FS, dir string, logger zerolog.Logger) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return errors.WrapIO(err, "readdir", dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := removeRecursive(fsys, path, logger); err != nil {
				return err
			}
			continue
		}
		if err := fsys.Remove(path); err != nil {
			return errors.WrapIO(err, "remove", path)
		}
		logger.Trace().Str("path", path).Msg("Removed entry")
	}

	if err := fsys.Remove(dir); err != nil {
		return errors.WrapIO(err, "rmdir", dir)
	}
	return nil
}
