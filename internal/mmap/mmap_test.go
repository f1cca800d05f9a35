package mmap_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/kv-journal/internal/mmap"
)

var _ = Describe("File", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "test-mmap-*")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should expose the file content", func() {
		path := filepath.Join(dir, "data")
		Expect(os.WriteFile(path, []byte("hello world"), 0o664)).To(Succeed())

		file, err := mmap.Open(path)
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(file.Close()).To(Succeed())
		}()

		Expect(file.Data).To(Equal([]byte("hello world")))
	})

	It("should map an empty file to no data", func() {
		path := filepath.Join(dir, "empty")
		Expect(os.WriteFile(path, nil, 0o664)).To(Succeed())

		file, err := mmap.Open(path)
		Expect(err).ToNot(HaveOccurred())
		defer func() {
			Expect(file.Close()).To(Succeed())
		}()

		Expect(file.Data).To(BeEmpty())
	})

	It("should fail for a missing file", func() {
		_, err := mmap.Open(filepath.Join(dir, "missing"))
		Expect(err).To(HaveOccurred())
	})

	It("should be safe to close twice", func() {
		path := filepath.Join(dir, "data")
		Expect(os.WriteFile(path, []byte("hello"), 0o664)).To(Succeed())

		file, err := mmap.Open(path)
		Expect(err).ToNot(HaveOccurred())

		Expect(file.Close()).To(Succeed())
		Expect(file.Data).To(BeNil())
		Expect(file.Close()).To(Succeed())
	})
})
