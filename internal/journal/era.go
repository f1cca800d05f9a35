package journal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"unsafe"

	"github.com/google/btree"
	"golang.org/x/crypto/sha3"

	"github.com/backbone81/kv-journal/internal/mmap"
	"github.com/backbone81/kv-journal/internal/utils"
)

// DigestSize is the size in bytes of the content digest at the start of
// every era file. The digest is SHA3-256 over everything after it.
const DigestSize = 32

// ErrEraTruncated reports an era file which is too short to even hold the
// digest header. This counts as corruption, not as an I/O failure.
var ErrEraTruncated = errors.New("era file is shorter than its digest header")

// LookupResult describes the outcome of a single-key lookup against an era.
type LookupResult int

const (
	// LookupAbsent means the era never mentions the key.
	LookupAbsent LookupResult = iota

	// LookupValue means the last operation for the key was an insert.
	LookupValue

	// LookupTombstone means the last operation for the key was a delete.
	LookupTombstone
)

// String returns a string representation of the lookup result.
func (r LookupResult) String() string {
	switch r {
	case LookupAbsent:
		return "absent"
	case LookupValue:
		return "value"
	case LookupTombstone:
		return "tombstone"
	default:
		return "unknown"
	}
}

// indexEntry records the last operation seen for a key during the open scan.
// The value slice aliases the era's mapped payload and must never outlive
// the mapping.
type indexEntry struct {
	value     []byte
	tombstone bool
}

// Era is one immutable, digest-verified segment of the journal: the mapped
// file content plus a key to last-operation index built once when the era is
// opened. An era never changes after creation, it is only ever removed as a
// whole by Delete.
//
// Instances of Era are NOT safe to use concurrently with Close or Delete.
// Concurrent Get and Iter calls are safe because the mapping is read-only.
type Era struct {
	noCopy utils.NoCopy

	// The path to the file backing this era.
	filePath string

	// The logical index implied by the file name.
	index uint64

	// The read-only mapping of the backing file.
	mapping *mmap.File

	// The point-lookup index. Keys and values alias the mapping, so the
	// index is dropped before the mapping is released.
	lookupIndex map[string]indexEntry
}

// EraWriterFile is the interface era creation needs from a file. It allows
// tests to exercise the failure handling with in-memory stubs.
type EraWriterFile interface {
	io.WriteCloser
	Sync() error
}

// CreateEra writes the given transaction as a new era file at path and opens
// it. The path must follow the era naming scheme, see NextEraFilename.
// Creation is exclusive: it fails if path already exists, which is what
// keeps two writers or two indices from silently colliding. The digest and
// payload are flushed to stable storage before the file is re-opened, so a
// write which was corrupted on its way to storage is caught here instead of
// at some later recovery.
func CreateEra(path string, transaction *Transaction) (*Era, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o664) //nolint:gosec // We can not validate paths in a library.
	if err != nil {
		return nil, fmt.Errorf("creating the era file %q: %w", path, err)
	}
	return createEra(path, transaction, file)
}

// createEra finishes era creation on an already open file. Split out from
// CreateEra so tests can inject file stubs.
func createEra(path string, transaction *Transaction, file EraWriterFile) (*Era, error) {
	if err := WriteEra(file, transaction); err != nil {
		// A partial file at this index would block every retry: creation is
		// exclusive, and the file would fail verification when the journal
		// is opened. Remove it so the failed push stays retryable.
		_ = file.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("writing the era file %q: %w", path, err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("closing the era file %q: %w", path, err)
	}

	return OpenEra(path)
}

// WriteEra writes the content digest followed by the serialized payload of
// the transaction to file and flushes it to stable storage. It does not
// close the file.
func WriteEra(file EraWriterFile, transaction *Transaction) error {
	digest := sha3.Sum256(transaction.Raw())
	if _, err := file.Write(digest[:]); err != nil {
		return fmt.Errorf("writing the era digest: %w", err)
	}
	if _, err := file.Write(transaction.Raw()); err != nil {
		return fmt.Errorf("writing the era payload: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("flushing the era: %w", err)
	}
	return nil
}

// OpenEra maps the era file at path read-only, verifies its content digest
// and builds the key to last-operation index from a single forward scan of
// the payload. A digest mismatch fails with CorruptedEraError carrying both
// digests, the era is never returned as usable.
func OpenEra(path string) (*Era, error) {
	index, err := eraIndex(path)
	if err != nil {
		return nil, err
	}

	mapping, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapping the era file %q: %w", path, err)
	}
	if len(mapping.Data) < DigestSize {
		_ = mapping.Close()
		EraCorruptionTotal.Inc()
		return nil, fmt.Errorf("opening era %q: %w", path, ErrEraTruncated)
	}

	stored := mapping.Data[:DigestSize]
	payload := mapping.Data[DigestSize:]
	digest := sha3.Sum256(payload)
	if !bytes.Equal(digest[:], stored) {
		// The error must not alias the mapping we are about to release.
		storedCopy := append([]byte(nil), stored...)
		_ = mapping.Close()
		EraCorruptionTotal.Inc()
		return nil, &CorruptedEraError{
			Path:     path,
			Expected: digest[:],
			Actual:   storedCopy,
		}
	}

	lookupIndex, err := buildIndex(payload)
	if err != nil {
		_ = mapping.Close()
		return nil, fmt.Errorf("indexing era %q: %w", path, err)
	}

	EraOpenTotal.Inc()
	return &Era{
		filePath:    path,
		index:       index,
		mapping:     mapping,
		lookupIndex: lookupIndex,
	}, nil
}

// buildIndex scans the payload once in file order. A later operation on a
// key overwrites the earlier one, matching the last-write-wins intent of the
// transaction itself.
func buildIndex(payload []byte) (map[string]indexEntry, error) {
	index := make(map[string]indexEntry)
	reader := NewOperationReader(payload)
	for reader.Next() {
		operation := reader.Operation()
		key := aliasString(operation.Key)
		switch operation.Kind {
		case OpInsert:
			index[key] = indexEntry{value: operation.Value}
		case OpDelete:
			index[key] = indexEntry{tombstone: true}
		}
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}
	return index, nil
}

// aliasString returns a string aliasing b without copying. Index keys alias
// the mapped payload and are only valid while the mapping is alive, which
// Close enforces by dropping the index before unmapping.
func aliasString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b)) //nolint:gosec // The mapping is immutable and outlives the index.
}

// Get looks up the last operation recorded for key. The returned value
// aliases the mapped file and is only valid for the lifetime of the era.
func (e *Era) Get(key []byte) ([]byte, LookupResult) {
	entry, ok := e.lookupIndex[string(key)] // The conversion does not allocate in a map access.
	if !ok {
		return nil, LookupAbsent
	}
	if entry.tombstone {
		return nil, LookupTombstone
	}
	return entry.value, LookupValue
}

// Iter returns the canonical deduplicated view of the era: the payload is
// parsed in file order into a key-ordered tree, later operations replacing
// earlier ones on the same key. The result is recomputed on every call and
// yields operations sorted by key, not in file order. The yielded operations
// alias the mapped file.
func (e *Era) Iter() iter.Seq[Operation] {
	tree := btree.NewG(2, func(a Operation, b Operation) bool {
		return bytes.Compare(a.Key, b.Key) < 0
	})
	reader := NewOperationReader(e.payload())
	for reader.Next() {
		tree.ReplaceOrInsert(reader.Operation())
	}
	// The payload was fully parsed when this era was opened, so the reader
	// can not fail here anymore.

	return func(yield func(Operation) bool) {
		tree.Ascend(func(operation Operation) bool {
			return yield(operation)
		})
	}
}

// FilePath returns the path of the file backing this era.
func (e *Era) FilePath() string {
	return e.filePath
}

// Index returns the logical index implied by the file name of this era.
func (e *Era) Index() uint64 {
	return e.index
}

// Close releases the mapping without touching the backing file. The index
// aliases mapped memory, so it is dropped in the same step. The era must not
// be used afterwards.
func (e *Era) Close() error {
	e.lookupIndex = nil
	if e.mapping == nil {
		return nil
	}
	mapping := e.mapping
	e.mapping = nil
	if err := mapping.Close(); err != nil {
		return fmt.Errorf("unmapping the era file %q: %w", e.filePath, err)
	}
	return nil
}

// Delete releases the mapping and removes the backing file. This is the
// hand-off point after compaction folded the era into the main store. The
// era must not be used afterwards.
func (e *Era) Delete() error {
	if err := e.Close(); err != nil {
		return err
	}
	if err := os.Remove(e.filePath); err != nil {
		return fmt.Errorf("removing the era file %q: %w", e.filePath, err)
	}
	return nil
}

// payload returns the mapped bytes after the digest header.
func (e *Era) payload() []byte {
	return e.mapping.Data[DigestSize:]
}
