package mmap

import (
	"errors"
	"fmt"
	"os"
)

// File represents a read-only memory-mapped file.
type File struct {
	// Data aliases the mapped file region. It must not be modified and must
	// not be accessed after Close.
	Data []byte

	file *os.File
}

// Open maps the file at path into memory as read-only. An empty file results
// in a nil Data slice.
func Open(path string) (*File, error) {
	file, err := os.Open(path) //nolint:gosec // We can not validate paths in a library.
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("inspecting file %q: %w", path, err)
	}

	size := info.Size()
	if size == 0 {
		return &File{file: file}, nil
	}
	if size != int64(int(size)) {
		_ = file.Close()
		return nil, fmt.Errorf("file %q is too large to map", path)
	}

	data, err := mapFile(file, int(size))
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("mapping file %q: %w", path, err)
	}
	return &File{Data: data, file: file}, nil
}

// Close unmaps the memory and closes the underlying file. All views into
// Data are invalid afterwards. Close is idempotent.
func (f *File) Close() error {
	var unmapErr error
	if f.Data != nil {
		unmapErr = unmapFile(f.Data)
		f.Data = nil
	}
	var closeErr error
	if f.file != nil {
		closeErr = f.file.Close()
		f.file = nil
	}
	return errors.Join(unmapErr, closeErr)
}
