package journal

import (
	"errors"
	"slices"
	"time"

	"github.com/backbone81/kv-journal/internal/utils"
)

// Journal is the ordered collection of open eras of one journal directory.
// Pushing a transaction creates the era at the next sequential index,
// lookups scan the eras from newest to oldest, and compaction drains the
// oldest eras out of the collection.
//
// Instances of Journal are NOT safe for concurrent mutation: Push,
// DrainFront and Close need external synchronization, typically a single
// owning Go routine. Concurrent Get calls against a journal which is not
// being mutated are safe.
type Journal struct {
	noCopy utils.NoCopy

	// The directory all era files are located in.
	directory string

	// The open eras in index order, oldest first.
	eras []*Era

	// The index the next pushed era will receive.
	nextEraIndex uint64
}

// Open loads the journal from the given directory. It validates that the era
// files form a gap-free run and verifies the digest of every era. The first
// error refuses the whole journal, it is never opened partially.
func Open(directory string) (*Journal, error) {
	files, err := EraFiles(directory)
	if err != nil {
		return nil, err
	}
	nextEraIndex, err := NextEraIndex(files)
	if err != nil {
		return nil, err
	}

	eras := make([]*Era, 0, len(files))
	for _, file := range files {
		era, err := OpenEra(file)
		if err != nil {
			closeEras(eras)
			return nil, err
		}
		eras = append(eras, era)
	}

	return &Journal{
		directory:    directory,
		eras:         eras,
		nextEraIndex: nextEraIndex,
	}, nil
}

// Push writes the transaction as a new era at the next sequential index and
// appends the opened era to the tail of the journal. The index advances only
// when the era was created successfully, so a failed push can not leave a
// gap on disk. Exclusive file creation makes an index collision a caller bug
// under the single-writer discipline, not a runtime race.
func (j *Journal) Push(transaction *Transaction) error {
	start := time.Now()

	era, err := CreateEra(NextEraFilename(j.directory, j.nextEraIndex), transaction)
	if err != nil {
		return err
	}
	j.nextEraIndex++
	j.eras = append(j.eras, era)

	PushTotal.Inc()
	PushDuration.Observe(time.Since(start).Seconds())
	return nil
}

// Get scans the eras from the most recently appended to the oldest and
// returns the value of the first insert found for key. It reports false as
// soon as it encounters a tombstone for the key, or when no era mentions the
// key at all. This guarantees most-recent-write-wins across era boundaries.
// The returned value aliases mapped memory, see Era.Get.
func (j *Journal) Get(key []byte) ([]byte, bool) {
	for i := len(j.eras) - 1; i >= 0; i-- {
		value, result := j.eras[i].Get(key)
		switch result {
		case LookupValue:
			return value, true
		case LookupTombstone:
			return nil, false
		}
	}
	return nil, false
}

// DrainFront removes the n oldest eras from the journal and returns them in
// their original order. n is clamped to the range [0, Len]. Deleting the
// underlying files is left to the caller via Era.Delete, so an interrupted
// compaction can be retried without losing data.
func (j *Journal) DrainFront(n int) []*Era {
	n = min(max(n, 0), len(j.eras))
	drained := make([]*Era, n)
	copy(drained, j.eras[:n])
	j.eras = slices.Delete(j.eras, 0, n)

	DrainedErasTotal.Add(float64(n))
	return drained
}

// Len returns the number of eras currently held in memory.
func (j *Journal) Len() int {
	return len(j.eras)
}

// NextEraIndex returns the index the next pushed era will receive.
func (j *Journal) NextEraIndex() uint64 {
	return j.nextEraIndex
}

// Directory returns the directory all era files of this journal are located
// in.
func (j *Journal) Directory() string {
	return j.directory
}

// Close releases the mappings of all open eras. The on-disk state is left
// untouched, the journal can be opened again from the same directory.
func (j *Journal) Close() error {
	var errs []error
	for _, era := range j.eras {
		errs = append(errs, era.Close())
	}
	j.eras = nil
	return errors.Join(errs...)
}

func closeEras(eras []*Era) {
	for _, era := range eras {
		_ = era.Close()
	}
}
