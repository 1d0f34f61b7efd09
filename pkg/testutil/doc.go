// Package testutil provides helpers for testing dirtree components.
//
// Trees are described inline as a Tree map, written with WriteTree and
// snapshotted with ReadTree so a test can compare a whole directory with
// one assertion. The helpers run against any types.FS, which lets the
// same fixture drive both the OS filesystem and an in-memory afero one.
package testutil
