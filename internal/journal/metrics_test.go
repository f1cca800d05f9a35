package journal_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/backbone81/kv-journal/internal/journal"
)

var _ = Describe("RegisterMetrics", func() {
	It("should register all collectors", func() {
		registry := prometheus.NewRegistry()
		Expect(journal.RegisterMetrics(registry)).To(Succeed())
	})

	It("should fail on double registration", func() {
		registry := prometheus.NewRegistry()
		Expect(journal.RegisterMetrics(registry)).To(Succeed())
		Expect(journal.RegisterMetrics(registry)).ToNot(Succeed())
	})
})
