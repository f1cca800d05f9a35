package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// EraFileExtension is the file extension all era files carry.
const EraFileExtension = ".era"

// eraFileNamePattern is the file pattern all era files need to follow. The
// file name stem is the canonical decimal era index: zero padding is
// rejected, it would remap the file to a path which does not exist.
var eraFileNamePattern = regexp.MustCompile(`^(?:0|[1-9][0-9]*)\.era$`)

// EraFiles returns the paths of all era files in the given directory, sorted
// by era index. It fails with InvalidLocationError if the directory does not
// exist or is not a directory, and with MissingEraError naming the first
// missing index if the indices do not form a gap-free run.
//
// Sorting is numeric on the parsed index, never lexical on the file name:
// once indices reach multiple digits, lexical order would place "10.era"
// before "2.era".
func EraFiles(directory string) ([]string, error) {
	info, err := os.Stat(directory)
	if err != nil || !info.IsDir() {
		return nil, &InvalidLocationError{Path: directory}
	}

	dirEntries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", directory, err)
	}

	indices := make([]uint64, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			// We are not interested in directories.
			continue
		}
		if !eraFileNamePattern.MatchString(dirEntry.Name()) {
			// We are not interested in files not matching our naming pattern.
			continue
		}
		index, err := strconv.ParseUint(strings.TrimSuffix(dirEntry.Name(), EraFileExtension), 10, 64)
		if err != nil {
			// This error should never occur when our file name pattern is correct.
			return nil, fmt.Errorf("parsing the era index from the file name: %w", err)
		}
		indices = append(indices, index)
	}
	slices.Sort(indices)

	files := make([]string, 0, len(indices))
	for i, index := range indices {
		if i > 0 && index != indices[i-1]+1 {
			return nil, &MissingEraError{Index: indices[i-1] + 1}
		}
		files = append(files, filepath.Join(directory, eraFileName(index)))
	}
	return files, nil
}

// NextEraIndex returns the index the next era will receive: zero for an
// empty journal, one past the highest existing index otherwise. The files
// are expected to be sorted, as returned by EraFiles.
func NextEraIndex(files []string) (uint64, error) {
	if len(files) == 0 {
		return 0, nil
	}
	index, err := eraIndex(files[len(files)-1])
	if err != nil {
		return 0, err
	}
	return index + 1, nil
}

// NextEraFilename returns the deterministic path of the era file about to be
// created for the given index.
func NextEraFilename(directory string, index uint64) string {
	return filepath.Join(directory, eraFileName(index))
}

// eraFileName returns the file name of the era with the given index. The
// file name stem equals the logical zero-based index.
func eraFileName(index uint64) string {
	return strconv.FormatUint(index, 10) + EraFileExtension
}

// eraIndex parses the era index out of an era file path. Only the canonical
// decimal form is accepted, see eraFileNamePattern.
func eraIndex(path string) (uint64, error) {
	stem := strings.TrimSuffix(filepath.Base(path), EraFileExtension)
	index, err := strconv.ParseUint(stem, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing the era index from %q: %w", path, err)
	}
	if stem != strconv.FormatUint(index, 10) {
		return 0, fmt.Errorf("era file %q does not use the canonical decimal index", path)
	}
	return index, nil
}
