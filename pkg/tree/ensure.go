package tree

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/arthur-debert/dirtree/pkg/errors"
	"github.com/arthur-debert/dirtree/pkg/logging"
	"github.com/arthur-debert/dirtree/pkg/types"
)

// DefaultDirMode is the permission directories are created with, before
// the process umask is applied.
const DefaultDirMode fs.FileMode = 0777

// EnsureDirectory makes sure a directory exists at path, creating missing
// parents as needed. It is a no-op when path is already a directory (or a
// symlink to one). When path, or one of its ancestors, exists as something
// other than a directory it fails with ErrPathConflict and leaves that
// entry alone.
func EnsureDirectory(fsys types.FS, path string) error {
	return EnsureDirectoryMode(fsys, path, DefaultDirMode)
}

// EnsureDirectoryMode is EnsureDirectory with an explicit permission for
// the directories it creates.
func EnsureDirectoryMode(fsys types.FS, path string, perm fs.FileMode) error {
	logger := logging.GetLogger("tree.ensure")

	info, err := fsys.Stat(path)
	switch {
	case err == nil && info.IsDir():
		logger.Trace().Str("path", path).Msg("Directory already exists")
		return nil
	case err == nil:
		return pathConflict(path)
	case !isMissing(err):
		return errors.WrapIO(err, "stat", path)
	}

	// A dangling symlink still occupies the name.
	if _, err := fsys.Lstat(path); err == nil {
		return pathConflict(path)
	}

	if err := checkAncestors(fsys, path); err != nil {
		return err
	}

	if err := fsys.MkdirAll(path, perm); err != nil {
		if stderrors.Is(err, syscall.ENOTDIR) {
			return pathConflict(path)
		}
		return errors.WrapIO(err, "mkdir", path)
	}

	logger.Debug().Str("path", path).Str("mode", perm.String()).Msg("Created directory")
	return nil
}

// checkAncestors walks up from path to the first ancestor that exists and
// fails when that ancestor is not a directory. Some backends would happily
// create a directory "inside" a file otherwise.
func checkAncestors(fsys types.FS, path string) error {
	dir := filepath.Clean(path)
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		info, err := fsys.Stat(parent)
		switch {
		case err == nil && info.IsDir():
			return nil
		case err == nil:
			return pathConflict(parent).WithDetail("requested", path)
		case !isMissing(err):
			return errors.WrapIO(err, "stat", parent)
		}
		dir = parent
	}
}

func pathConflict(path string) *errors.DirtreeError {
	return errors.Newf(errors.ErrPathConflict, "not a directory: %s", path).
		WithDetail("path", path)
}

// isMissing reports whether err means nothing is at the path. ENOTDIR
// counts: a file in the middle of the path means the full path is absent.
func isMissing(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, syscall.ENOTDIR)
}
