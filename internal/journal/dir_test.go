package journal_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/kv-journal/internal/journal"
)

var _ = Describe("EraFiles", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "test-dir-*")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	// EraFiles never opens the files, so empty placeholders are enough here.
	touch := func(names ...string) {
		for _, name := range names {
			Expect(os.WriteFile(filepath.Join(dir, name), nil, 0o664)).To(Succeed())
		}
	}

	It("should fail for a missing directory", func() {
		_, err := journal.EraFiles(filepath.Join(dir, "missing"))

		var locationErr *journal.InvalidLocationError
		Expect(errors.As(err, &locationErr)).To(BeTrue())
	})

	It("should fail when the location is a file", func() {
		touch("not-a-dir")

		_, err := journal.EraFiles(filepath.Join(dir, "not-a-dir"))

		var locationErr *journal.InvalidLocationError
		Expect(errors.As(err, &locationErr)).To(BeTrue())
	})

	It("should return no files for an empty directory", func() {
		files, err := journal.EraFiles(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(BeEmpty())
	})

	It("should ignore files and directories not matching the naming pattern", func() {
		touch("0.era", "readme.txt", "x.era", "1.era.bak")
		Expect(os.Mkdir(filepath.Join(dir, "2.era"), 0o775)).To(Succeed())

		files, err := journal.EraFiles(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{filepath.Join(dir, "0.era")}))
	})

	It("should ignore zero-padded file names", func() {
		// "007.era" would be remapped to the nonexistent "7.era" if it were
		// accepted.
		touch("0.era", "007.era")

		files, err := journal.EraFiles(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(Equal([]string{filepath.Join(dir, "0.era")}))
	})

	It("should sort numerically, not lexically", func() {
		// With eleven eras a lexical sort would place "10.era" before
		// "2.era" and report a bogus gap.
		for i := range 11 {
			touch(fmt.Sprintf("%d.era", i))
		}

		files, err := journal.EraFiles(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(11))
		Expect(files[2]).To(Equal(filepath.Join(dir, "2.era")))
		Expect(files[10]).To(Equal(filepath.Join(dir, "10.era")))
	})

	It("should detect a gap and name the missing index", func() {
		touch("0.era", "2.era")

		_, err := journal.EraFiles(dir)

		var missingErr *journal.MissingEraError
		Expect(errors.As(err, &missingErr)).To(BeTrue())
		Expect(missingErr.Index).To(Equal(uint64(1)))
	})

	It("should accept a contiguous run", func() {
		touch("0.era", "1.era", "2.era")

		files, err := journal.EraFiles(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(3))
	})

	It("should accept a contiguous run not starting at zero", func() {
		// Compaction deletes the oldest era files, so the run can start at
		// any index.
		touch("5.era", "6.era", "7.era")

		files, err := journal.EraFiles(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(3))
	})
})

var _ = Describe("NextEraIndex", func() {
	It("should be zero for an empty journal", func() {
		index, err := journal.NextEraIndex(nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(index).To(Equal(uint64(0)))
	})

	It("should be one past the highest existing index", func() {
		index, err := journal.NextEraIndex([]string{"/journal/41.era"})
		Expect(err).ToNot(HaveOccurred())
		Expect(index).To(Equal(uint64(42)))
	})
})

var _ = Describe("NextEraFilename", func() {
	It("should use the index as the file name stem", func() {
		Expect(journal.NextEraFilename("/journal", 7)).To(Equal(filepath.Join("/journal", "7.era")))
	})
})
