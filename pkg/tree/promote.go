package tree

import (
	"math/rand"
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/dirtree/pkg/errors"
	"github.com/arthur-debert/dirtree/pkg/logging"
	"github.com/arthur-debert/dirtree/pkg/types"
)

// DefaultTempPrefix starts the temporary name a promoted folder is parked
// under while its children move out.
const DefaultTempPrefix = "renamed"

// PromoteOptions tunes PromoteContents
type PromoteOptions struct {
	TempPrefix string
}

// PromoteOption modifies PromoteOptions
type PromoteOption func(*PromoteOptions)

// WithTempPrefix sets the prefix of the temporary folder name
func WithTempPrefix(prefix string) PromoteOption {
	return func(o *PromoteOptions) {
		if prefix != "" {
			o.TempPrefix = prefix
		}
	}
}

// randomSuffix is swapped out in tests to force name collisions.
var randomSuffix = func() string {
	return strconv.FormatUint(uint64(rand.Uint32()), 10)
}

// PromoteContents moves every direct child of the folder at path into the
// folder's parent and removes the emptied folder.
//
// path and its parent are resolved to canonical absolute paths first; if
// either is not an existing directory nothing happens.
//
// The folder is renamed to a free temporary name in the parent before any
// child moves, so a child sharing the folder's own name (foo/foo) lands on
// parent/foo without colliding. Children move in directory listing order.
// If one move fails the error is returned as ErrIO, the children moved so
// far stay in the parent and the rest stay in the temporary folder.
//
// Moves are plain renames. A child file whose name matches an existing file
// in the parent overwrites it on POSIX hosts. A child directory landing on a
// non-empty directory fails with ErrIO.
func PromoteContents(fsys types.FS, path string, opts ...PromoteOption) error {
	o := PromoteOptions{TempPrefix: DefaultTempPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.GetLogger("tree.promote")

	folder, ok := resolveDir(fsys, path)
	if !ok {
		logger.Debug().Str("path", path).Msg("Not a directory, nothing to promote")
		return nil
	}
	parent, ok := resolveDir(fsys, filepath.Dir(folder))
	if !ok || parent == folder {
		logger.Debug().Str("path", folder).Msg("No parent directory, nothing to promote")
		return nil
	}

	defer logging.LogOperationStart(logger, "promote")()

	tempName, err := freeName(fsys, o.TempPrefix, folder, parent)
	if err != nil {
		return err
	}
	tempPath := filepath.Join(parent, tempName)
	if err := fsys.Rename(folder, tempPath); err != nil {
		return errors.WrapIO(err, "rename", folder).WithDetail("to", tempPath)
	}
	logger.Debug().Str("path", folder).Str("temp", tempPath).Msg("Parked folder under temporary name")

	entries, err := fsys.ReadDir(tempPath)
	if err != nil {
		return errors.WrapIO(err, "readdir", tempPath)
	}
	for i, entry := range entries {
		from := filepath.Join(tempPath, entry.Name())
		to := filepath.Join(parent, entry.Name())
		if err := fsys.Rename(from, to); err != nil {
			return errors.WrapIO(err, "rename", from).
				WithDetail("to", to).
				WithDetail("promoted", i).
				WithDetail("temp", tempPath)
		}
		logger.Trace().Str("from", from).Str("to", to).Msg("Promoted entry")
	}

	if err := fsys.Remove(tempPath); err != nil {
		return errors.WrapIO(err, "rmdir", tempPath)
	}
	logger.Debug().Str("path", folder).Int("entries", len(entries)).Msg("Promoted folder contents")
	return nil
}

// PromoteDirContents is the old name of PromoteContents.
//
// Deprecated: use PromoteContents.
func PromoteDirContents(fsys types.FS, path string) error {
	return PromoteContents(fsys, path)
}

// resolveDir returns the canonical path of p when it is an existing
// directory. Any resolution failure reads as "not a directory".
func resolveDir(fsys types.FS, p string) (string, bool) {
	resolved, err := fsys.RealPath(p)
	if err != nil {
		return "", false
	}
	info, err := fsys.Stat(resolved)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return resolved, true
}

// freeName grows prefix with random numeric suffixes until the name is
// unused both inside folder and inside parent.
func freeName(fsys types.FS, prefix, folder, parent string) (string, error) {
	name := prefix
	for {
		name = name + "_" + randomSuffix()
		taken, err := exists(fsys, filepath.Join(folder, name))
		if err != nil {
			return "", err
		}
		if !taken {
			taken, err = exists(fsys, filepath.Join(parent, name))
			if err != nil {
				return "", err
			}
		}
		if !taken {
			return name, nil
		}
	}
}

// exists uses Lstat so a dangling symlink counts as taken.
func exists(fsys types.FS, p string) (bool, error) {
	_, err := fsys.Lstat(p)
	if err == nil {
		return true, nil
	}
	if isMissing(err) {
		return false, nil
	}
	return false, errors.WrapIO(err, "lstat", p)
}
