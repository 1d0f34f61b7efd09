// Package types defines the interfaces shared across dirtree, chiefly the
// FS abstraction every tree operation runs against.
package types
