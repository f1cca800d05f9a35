package journal

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	ErrPayloadTruncated     = errors.New("era payload ends in the middle of an operation record")
	ErrUnknownOperationKind = errors.New("unknown operation kind in era payload")
)

// OpKind identifies the type of a journal operation.
type OpKind byte

const (
	// OpInsert records that a key was set to a value.
	// We do not start at 0 to detect zeroed data.
	OpInsert OpKind = iota + 1

	// OpDelete records that a key was removed.
	OpDelete
)

// String returns a string representation of the operation kind.
func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Operation is a single key mutation decoded from a transaction payload.
// Key and Value alias the payload they were decoded from and stay valid for
// as long as that payload does. Value is nil for deletes.
type Operation struct {
	Kind  OpKind
	Key   []byte
	Value []byte
}

// OperationReader parses a serialized transaction payload into its discrete
// operations in file order.
//
// The record format is one kind byte, the key length as uvarint, the key
// bytes, and for inserts the value length as uvarint followed by the value
// bytes. The decoded operations alias the payload instead of copying it.
//
// Instances of OperationReader are NOT safe to use concurrently.
type OperationReader struct {
	payload []byte
	offset  int
	current Operation
	err     error
}

// NewOperationReader creates an OperationReader over the given payload.
func NewOperationReader(payload []byte) *OperationReader {
	return &OperationReader{payload: payload}
}

// Next advances the reader to the next operation. It returns false when the
// payload is exhausted or a record could not be decoded, in which case Err
// reports the failure.
func (r *OperationReader) Next() bool {
	if r.err != nil || r.offset >= len(r.payload) {
		return false
	}

	kind := OpKind(r.payload[r.offset])
	r.offset++

	switch kind {
	case OpInsert:
		key, err := r.readBytes()
		if err != nil {
			r.err = err
			return false
		}
		value, err := r.readBytes()
		if err != nil {
			r.err = err
			return false
		}
		r.current = Operation{Kind: OpInsert, Key: key, Value: value}
	case OpDelete:
		key, err := r.readBytes()
		if err != nil {
			r.err = err
			return false
		}
		r.current = Operation{Kind: OpDelete, Key: key}
	default:
		r.err = fmt.Errorf("%w: %d at offset %d", ErrUnknownOperationKind, byte(kind), r.offset-1)
		return false
	}
	return true
}

// Operation returns the operation the reader advanced to with the last
// successful call to Next.
func (r *OperationReader) Operation() Operation {
	return r.current
}

// Err returns the first decoding error encountered, if any.
func (r *OperationReader) Err() error {
	return r.err
}

// readBytes decodes a single length-prefixed byte sequence and returns it as
// a view into the payload.
func (r *OperationReader) readBytes() ([]byte, error) {
	length, n := binary.Uvarint(r.payload[r.offset:])
	if n <= 0 {
		return nil, fmt.Errorf("%w: bad length at offset %d", ErrPayloadTruncated, r.offset)
	}
	r.offset += n
	if length > uint64(len(r.payload)-r.offset) {
		return nil, fmt.Errorf("%w: %d bytes missing at offset %d", ErrPayloadTruncated, length-uint64(len(r.payload)-r.offset), r.offset)
	}
	data := r.payload[r.offset : r.offset+int(length)]
	r.offset += int(length)
	return data, nil
}
