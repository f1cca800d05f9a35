// Package journal is the public interface to the write-ahead journal. See
// the internal journal package for the implementation.
package journal
