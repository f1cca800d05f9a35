package journal

import (
	"bytes"
	"encoding/binary"
)

// Transaction accumulates key mutations and maintains their stable byte
// serialization. The serialization is what gets hashed and written when the
// transaction is pushed to the journal. Later operations on the same key
// shadow earlier ones, the journal preserves that last-write-wins intent.
//
// Instances of Transaction are NOT safe to use concurrently.
type Transaction struct {
	buffer bytes.Buffer

	// This is a temporary buffer for encoding lengths without having to
	// allocate memory.
	scratchBuffer [binary.MaxVarintLen64]byte
}

// NewTransaction creates an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{}
}

// Insert records that key is set to value.
func (t *Transaction) Insert(key []byte, value []byte) {
	t.buffer.WriteByte(byte(OpInsert))
	t.writeBytes(key)
	t.writeBytes(value)
}

// Delete records that key was removed.
func (t *Transaction) Delete(key []byte) {
	t.buffer.WriteByte(byte(OpDelete))
	t.writeBytes(key)
}

// Raw returns the stable serialization of all recorded operations. The
// result aliases the internal buffer and is invalidated by the next Insert,
// Delete or Reset.
func (t *Transaction) Raw() []byte {
	return t.buffer.Bytes()
}

// Empty reports whether the transaction holds no operations.
func (t *Transaction) Empty() bool {
	return t.buffer.Len() == 0
}

// Reset discards all recorded operations so the transaction can be reused.
func (t *Transaction) Reset() {
	t.buffer.Reset()
}

func (t *Transaction) writeBytes(data []byte) {
	n := binary.PutUvarint(t.scratchBuffer[:], uint64(len(data)))
	t.buffer.Write(t.scratchBuffer[:n])
	t.buffer.Write(data)
}
