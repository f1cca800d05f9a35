package journal_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/backbone81/kv-journal/internal/journal"
)

var _ = Describe("Transaction", func() {
	It("should start out empty", func() {
		transaction := journal.NewTransaction()
		Expect(transaction.Empty()).To(BeTrue())
		Expect(transaction.Raw()).To(BeEmpty())
	})

	It("should serialize operations in the order they were recorded", func() {
		transaction := journal.NewTransaction()
		transaction.Insert([]byte("key"), []byte("value"))
		transaction.Delete([]byte("key2"))
		transaction.Insert([]byte("key"), []byte("value2"))
		Expect(transaction.Empty()).To(BeFalse())

		reader := journal.NewOperationReader(transaction.Raw())

		Expect(reader.Next()).To(BeTrue())
		Expect(reader.Operation().Kind).To(Equal(journal.OpInsert))
		Expect(reader.Operation().Key).To(Equal([]byte("key")))
		Expect(reader.Operation().Value).To(Equal([]byte("value")))

		Expect(reader.Next()).To(BeTrue())
		Expect(reader.Operation().Kind).To(Equal(journal.OpDelete))
		Expect(reader.Operation().Key).To(Equal([]byte("key2")))

		Expect(reader.Next()).To(BeTrue())
		Expect(reader.Operation().Kind).To(Equal(journal.OpInsert))
		Expect(reader.Operation().Key).To(Equal([]byte("key")))
		Expect(reader.Operation().Value).To(Equal([]byte("value2")))

		Expect(reader.Next()).To(BeFalse())
		Expect(reader.Err()).ToNot(HaveOccurred())
	})

	It("should be reusable after a reset", func() {
		transaction := journal.NewTransaction()
		transaction.Insert([]byte("key"), []byte("value"))
		transaction.Reset()
		Expect(transaction.Empty()).To(BeTrue())

		transaction.Delete([]byte("key"))
		reader := journal.NewOperationReader(transaction.Raw())
		Expect(reader.Next()).To(BeTrue())
		Expect(reader.Operation().Kind).To(Equal(journal.OpDelete))
		Expect(reader.Next()).To(BeFalse())
		Expect(reader.Err()).ToNot(HaveOccurred())
	})
})

var _ = Describe("OperationReader", func() {
	It("should report an empty payload as exhausted", func() {
		reader := journal.NewOperationReader(nil)
		Expect(reader.Next()).To(BeFalse())
		Expect(reader.Err()).ToNot(HaveOccurred())
	})

	It("should fail on an unknown operation kind", func() {
		reader := journal.NewOperationReader([]byte{0x7f})
		Expect(reader.Next()).To(BeFalse())
		Expect(reader.Err()).To(MatchError(journal.ErrUnknownOperationKind))
	})

	It("should fail on a truncated record", func() {
		transaction := journal.NewTransaction()
		transaction.Insert([]byte("key"), []byte("value"))
		payload := transaction.Raw()

		reader := journal.NewOperationReader(payload[:len(payload)-1])
		Expect(reader.Next()).To(BeFalse())
		Expect(reader.Err()).To(MatchError(journal.ErrPayloadTruncated))
	})

	It("should stop after the first error", func() {
		reader := journal.NewOperationReader([]byte{0x7f})
		Expect(reader.Next()).To(BeFalse())
		Expect(reader.Next()).To(BeFalse())
		Expect(reader.Err()).To(MatchError(journal.ErrUnknownOperationKind))
	})
})
