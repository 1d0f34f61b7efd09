package tree

import (
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dirtree/pkg/errors"
	"github.com/arthur-debert/dirtree/pkg/logging"
	"github.com/arthur-debert/dirtree/pkg/types"
	"github.com/rs/zerolog"
)

// SymlinkPolicy decides what CopyTree does with symbolic links in the source
type SymlinkPolicy string

const (
	// SymlinkFollow copies what the link points to: links to directories
	// are recursed into, links to files are copied as regular files.
	SymlinkFollow SymlinkPolicy = "follow"
	// SymlinkPreserve recreates the link, with the same target, in the
	// destination.
	SymlinkPreserve SymlinkPolicy = "preserve"
	// SymlinkSkip leaves links out of the copy.
	SymlinkSkip SymlinkPolicy = "skip"
)

// DefaultMaxDepth bounds copy recursion. With SymlinkFollow a link cycle
// would otherwise recurse forever.
const DefaultMaxDepth = 256

// ParseSymlinkPolicy parses a policy name
func ParseSymlinkPolicy(s string) (SymlinkPolicy, error) {
	switch p := SymlinkPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case SymlinkFollow, SymlinkPreserve, SymlinkSkip:
		return p, nil
	case "":
		return SymlinkFollow, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "unknown symlink policy %q (want follow, preserve or skip)", s)
	}
}

// CopyOptions tunes CopyTree
type CopyOptions struct {
	Symlinks            SymlinkPolicy
	PreservePermissions bool
	DirMode             fs.FileMode
	MaxDepth            int
}

// DefaultCopyOptions follows symlinks and keeps file permission bits
func DefaultCopyOptions() CopyOptions {
	return CopyOptions{
		Symlinks:            SymlinkFollow,
		PreservePermissions: true,
		DirMode:             DefaultDirMode,
		MaxDepth:            DefaultMaxDepth,
	}
}

// CopyOption modifies CopyOptions
type CopyOption func(*CopyOptions)

// WithSymlinks sets the symlink policy
func WithSymlinks(p SymlinkPolicy) CopyOption {
	return func(o *CopyOptions) { o.Symlinks = p }
}

// WithPreservePermissions toggles copying file permission bits
func WithPreservePermissions(preserve bool) CopyOption {
	return func(o *CopyOptions) { o.PreservePermissions = preserve }
}

// WithDirMode sets the permission for created directories
func WithDirMode(mode fs.FileMode) CopyOption {
	return func(o *CopyOptions) { o.DirMode = mode }
}

// WithMaxDepth sets the recursion limit
func WithMaxDepth(depth int) CopyOption {
	return func(o *CopyOptions) { o.MaxDepth = depth }
}

// WithCopyOptions replaces all options at once
func WithCopyOptions(opts CopyOptions) CopyOption {
	return func(o *CopyOptions) { *o = opts }
}

// CopyTree recursively copies the folder src into dst. dst and any missing
// parents are created first; existing directories under dst are reused
// and existing files overwritten, so copying into a partial destination
// merges into it. Symlinks already inside dst are replaced, never written
// through.
//
// src must be an existing directory (ErrNotFound / ErrInvalidInput) and
// dst must not be src or lie inside it (ErrInvalidInput). Any other
// failure is returned as ErrIO as soon as it happens; files copied up to
// that point are left in dst.
func CopyTree(fsys types.FS, src, dst string, opts ...CopyOption) error {
	o := DefaultCopyOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Symlinks == "" {
		o.Symlinks = SymlinkFollow
	}
	if o.DirMode == 0 {
		o.DirMode = DefaultDirMode
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}

	info, err := fsys.Stat(src)
	if err != nil {
		if isMissing(err) {
			return errors.Wrapf(err, errors.ErrNotFound, "source does not exist: %s", src).
				WithDetail("path", src)
		}
		return errors.WrapIO(err, "stat", src)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "source is not a directory: %s", src).
			WithDetail("path", src)
	}
	if err := checkNotNested(fsys, src, dst); err != nil {
		return err
	}

	c := &copier{fsys: fsys, opts: o, logger: logging.GetLogger("tree.copy")}
	defer logging.LogOperationStart(c.logger, "copy")()
	if err := c.copyDir(src, dst, 0); err != nil {
		return err
	}
	c.logger.Debug().
		Str("src", src).
		Str("dst", dst).
		Int("files", c.files).
		Int("dirs", c.dirs).
		Msg("Copied tree")
	return nil
}

// CopyDirTree is the old name of CopyTree.
//
// Deprecated: use CopyTree.
func CopyDirTree(fsys types.FS, src, dst string) error {
	return CopyTree(fsys, src, dst)
}

type copier struct {
	fsys   types.FS
	opts   CopyOptions
	logger zerolog.Logger

	files int
	dirs  int
}

func (c *copier) copyDir(src, dst string, depth int) error {
	if depth > c.opts.MaxDepth {
		return errors.Newf(errors.ErrInvalidInput, "maximum copy depth %d exceeded at %s", c.opts.MaxDepth, src).
			WithDetail("path", src)
	}
	if err := EnsureDirectoryMode(c.fsys, dst, c.opts.DirMode); err != nil {
		return err
	}
	c.dirs++

	entries, err := c.fsys.ReadDir(src)
	if err != nil {
		return errors.WrapIO(err, "readdir", src)
	}

	for _, entry := range entries {
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		if entry.Type()&fs.ModeSymlink != 0 {
			switch c.opts.Symlinks {
			case SymlinkSkip:
				c.logger.Trace().Str("path", from).Msg("Skipped symlink")
				continue
			case SymlinkPreserve:
				if err := c.copySymlink(from, to); err != nil {
					return err
				}
				continue
			}
		}

		// Stat follows links, which is what SymlinkFollow wants.
		info, err := c.fsys.Stat(from)
		if err != nil {
			return errors.WrapIO(err, "stat", from)
		}
		if err := c.unlinkSymlink(to); err != nil {
			return err
		}
		if info.IsDir() {
			if err := c.copyDir(from, to, depth+1); err != nil {
				return err
			}
			continue
		}
		if err := c.copyFile(from, to, info.Mode()); err != nil {
			return err
		}
	}
	return nil
}

func (c *copier) copyFile(src, dst string, mode fs.FileMode) (err error) {
	in, err := c.fsys.Open(src)
	if err != nil {
		return errors.WrapIO(err, "open", src)
	}
	defer func() { _ = in.Close() }()

	out, err := c.fsys.Create(dst, mode.Perm())
	if err != nil {
		return errors.WrapIO(err, "create", dst)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.WrapIO(cerr, "close", dst)
		}
	}()

	n, err := io.Copy(out, in)
	if err != nil {
		return errors.WrapIO(err, "copy", dst).WithDetail("from", src)
	}
	if c.opts.PreservePermissions {
		if err := c.fsys.Chmod(dst, mode.Perm()); err != nil {
			return errors.WrapIO(err, "chmod", dst)
		}
	}

	c.files++
	c.logger.Trace().Str("from", src).Str("to", dst).Int64("bytes", n).Msg("Copied file")
	return nil
}

// unlinkSymlink removes a symlink already sitting at dst so that copying
// over it replaces the link instead of writing outside the destination.
func (c *copier) unlinkSymlink(dst string) error {
	info, err := c.fsys.Lstat(dst)
	if err != nil || info.Mode()&fs.ModeSymlink == 0 {
		return nil
	}
	if err := c.fsys.Remove(dst); err != nil {
		return errors.WrapIO(err, "remove", dst)
	}
	c.logger.Trace().Str("path", dst).Msg("Replaced symlink in destination")
	return nil
}

func (c *copier) copySymlink(src, dst string) error {
	target, err := c.fsys.Readlink(src)
	if err != nil {
		return errors.WrapIO(err, "readlink", src)
	}

	if info, err := c.fsys.Lstat(dst); err == nil {
		if info.IsDir() {
			return pathConflict(dst).WithDetail("from", src)
		}
		if err := c.fsys.Remove(dst); err != nil {
			return errors.WrapIO(err, "remove", dst)
		}
	}

	if err := c.fsys.Symlink(target, dst); err != nil {
		return errors.WrapIO(err, "symlink", dst).WithDetail("target", target)
	}
	c.logger.Trace().Str("from", src).Str("to", dst).Str("target", target).Msg("Recreated symlink")
	return nil
}

// checkNotNested rejects a destination equal to or beneath the source,
// which would make the copy feed on its own output.
func checkNotNested(fsys types.FS, src, dst string) error {
	srcPath, err := fsys.RealPath(src)
	if err != nil {
		return errors.WrapIO(err, "realpath", src)
	}
	dstPath, err := resolvePartial(fsys, dst)
	if err != nil {
		return err
	}

	if dstPath == srcPath || strings.HasPrefix(dstPath, srcPath+string(filepath.Separator)) {
		return errors.Newf(errors.ErrInvalidInput, "destination %s is inside source %s", dst, src).
			WithDetail("src", srcPath).
			WithDetail("dst", dstPath)
	}
	return nil
}

// resolvePartial canonicalizes p even when its tail does not exist yet, by
// resolving the deepest existing ancestor and re-appending the rest.
func resolvePartial(fsys types.FS, p string) (string, error) {
	p = filepath.Clean(p)
	var tail []string
	for {
		resolved, err := fsys.RealPath(p)
		if err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved, nil
		}
		if !isMissing(err) {
			return "", errors.WrapIO(err, "realpath", p)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return "", errors.WrapIO(err, "realpath", p)
		}
		tail = append(tail, filepath.Base(p))
		p = parent
	}
}
