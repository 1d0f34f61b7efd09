// Package tree implements the directory tree operations behind dirtree:
// name sanitizing, mkdir -p, recursive removal, promoting a folder's
// contents into its parent, and recursive copy.
//
// Every operation is a free function over a types.FS. None of them is
// transactional. On failure the error is returned immediately and the tree
// is left as it was at that moment: partially removed, partially promoted
// or partially copied. Callers that need all-or-nothing behaviour should
// work in a temporary location and rename into place once the operation
// succeeds.
//
// Nothing here locks. Running two operations against the same subtree at
// the same time, from this package or anything else, is undefined.
package tree
