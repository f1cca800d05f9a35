package journal

import (
	"encoding/hex"
	"fmt"
)

// CorruptedEraError reports that an era file failed its content digest
// verification. It carries both digests for diagnosis.
type CorruptedEraError struct {
	// Path is the era file which failed verification.
	Path string

	// Expected is the digest computed over the payload found in the file.
	Expected []byte

	// Actual is the digest stored in the file header.
	Actual []byte
}

func (e *CorruptedEraError) Error() string {
	return fmt.Sprintf(
		"corrupted era %q: expected digest %s, got %s",
		e.Path,
		hex.EncodeToString(e.Expected),
		hex.EncodeToString(e.Actual),
	)
}

// InvalidLocationError reports that a journal directory does not exist or is
// not a directory.
type InvalidLocationError struct {
	Path string
}

func (e *InvalidLocationError) Error() string {
	return fmt.Sprintf("invalid journal location %q", e.Path)
}

// MissingEraError reports a gap in the on-disk era sequence.
type MissingEraError struct {
	Index uint64
}

func (e *MissingEraError) Error() string {
	return fmt.Sprintf("journal era %d is missing", e.Index)
}
