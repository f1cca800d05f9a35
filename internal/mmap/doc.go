// Package mmap provides read-only memory-mapped file access.
//
// The Data field of a File aliases the mapped file region. Any slices
// created as views into Data become invalid after Close. Callers handing out
// zero-copy views must keep the mapping alive for as long as the views are
// in use.
//
// On platforms without mmap support the file content is read into an
// immutable buffer instead. The two behave identically as long as the file
// is never modified after opening.
package mmap
