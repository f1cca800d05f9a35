package journal

import intjournal "github.com/backbone81/kv-journal/internal/journal"

// Journal is the ordered collection of open eras of one journal directory.
type Journal = intjournal.Journal

// Era is one immutable, digest-verified segment of the journal.
type Era = intjournal.Era

// Transaction accumulates key mutations and maintains their stable byte
// serialization.
type Transaction = intjournal.Transaction

// Operation is a single key mutation decoded from a transaction payload.
type Operation = intjournal.Operation

// OperationReader parses a serialized transaction payload into its discrete
// operations in file order.
type OperationReader = intjournal.OperationReader

// OpKind identifies the type of a journal operation.
type OpKind = intjournal.OpKind

// LookupResult describes the outcome of a single-key lookup against an era.
type LookupResult = intjournal.LookupResult

// CorruptedEraError reports that an era file failed its content digest
// verification.
type CorruptedEraError = intjournal.CorruptedEraError

// InvalidLocationError reports that a journal directory does not exist or is
// not a directory.
type InvalidLocationError = intjournal.InvalidLocationError

// MissingEraError reports a gap in the on-disk era sequence.
type MissingEraError = intjournal.MissingEraError

// EraWriterFile is the interface era creation needs from a file.
type EraWriterFile = intjournal.EraWriterFile

const (
	OpInsert = intjournal.OpInsert
	OpDelete = intjournal.OpDelete

	LookupAbsent    = intjournal.LookupAbsent
	LookupValue     = intjournal.LookupValue
	LookupTombstone = intjournal.LookupTombstone

	// DigestSize is the size in bytes of the content digest at the start of
	// every era file.
	DigestSize = intjournal.DigestSize

	// EraFileExtension is the file extension all era files carry.
	EraFileExtension = intjournal.EraFileExtension
)

// ErrEraTruncated reports an era file which is too short to even hold the
// digest header.
var ErrEraTruncated = intjournal.ErrEraTruncated

// Open loads the journal from the given directory.
var Open = intjournal.Open

// CreateEra writes the given transaction as a new era file at path and opens
// it.
var CreateEra = intjournal.CreateEra

// OpenEra maps the era file at path read-only, verifies its content digest
// and builds the point-lookup index.
var OpenEra = intjournal.OpenEra

// WriteEra writes the content digest followed by the serialized payload of
// the transaction to file and flushes it to stable storage.
var WriteEra = intjournal.WriteEra

// NewTransaction creates an empty transaction.
var NewTransaction = intjournal.NewTransaction

// NewOperationReader creates an OperationReader over the given payload.
var NewOperationReader = intjournal.NewOperationReader

// EraFiles returns the paths of all era files in the given directory, sorted
// by era index.
var EraFiles = intjournal.EraFiles

// NextEraIndex returns the index the next era will receive.
var NextEraIndex = intjournal.NextEraIndex

// NextEraFilename returns the deterministic path of the era file about to be
// created for the given index.
var NextEraFilename = intjournal.NextEraFilename

// RegisterMetrics registers all metrics collectors with the given prometheus
// registerer.
var RegisterMetrics = intjournal.RegisterMetrics
