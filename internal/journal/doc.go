// Package journal provides the write-ahead journal of an embedded key-value
// storage engine. It persists batches of key mutations durably and in order
// and answers point lookups against data which was written but not yet
// compacted into the main store.
//
// The on-disk structure looks like this:
//
//   - The journal is made up of immutable era files which are all located in
//     the same directory. Every era file has its zero-based index as its file
//     name with an `.era` file extension. Indices increase by exactly one,
//     gaps cause the journal open to fail.
//   - Each era file starts with a 32 byte SHA3-256 digest covering everything
//     that follows. The rest of the file is the serialized payload of a
//     single transaction, a concatenation of operation records. The digest is
//     verified every time an era is opened.
//   - Era files are created exclusively, flushed to stable storage and never
//     modified afterwards. Compaction removes whole files after their content
//     was folded into the main store.
package journal
