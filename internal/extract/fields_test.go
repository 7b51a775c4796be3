package extract_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drtools/dr-invoice-tracker/internal/extract"
)

var _ = Describe("ExtractHeaderFields", func() {
	It("pulls the DR number after its label", func() {
		h := extract.ExtractHeaderFields("Delivery Request No: 1234567890")
		Expect(h.DRNo).To(Equal("1234567890"))
	})

	It("accepts punctuation variants around the label", func() {
		h := extract.ExtractHeaderFields("DELIVERY REQUEST NO.- 55555")
		Expect(h.DRNo).To(Equal("55555"))
	})

	It("ignores digit runs outside 5-12 digits", func() {
		h := extract.ExtractHeaderFields("Delivery Request No: 1234")
		Expect(h.DRNo).To(BeEmpty())
	})

	It("pulls the branch through its site suffix", func() {
		h := extract.ExtractHeaderFields("Request: Madurai Operations - Unit 2")
		Expect(h.Branch).To(Equal("Madurai Operations - Unit 2"))
	})

	It("matches Plant and Pl suffixes too", func() {
		h := extract.ExtractHeaderFields("Request - Doddaballapur Plant")
		Expect(h.Branch).To(Equal("Doddaballapur Plant"))
	})

	It("leaves fields empty when no label is present", func() {
		h := extract.ExtractHeaderFields("some unrelated text 99999")
		Expect(h.DRNo).To(BeEmpty())
		Expect(h.Branch).To(BeEmpty())
	})

	It("is idempotent: re-running returns the same first match", func() {
		text := "Delivery Request No: 1111111111\nDelivery Request No: 2222222222"
		first := extract.ExtractHeaderFields(text)
		second := extract.ExtractHeaderFields(text)
		Expect(first).To(Equal(second))
		Expect(first.DRNo).To(Equal("1111111111"))
	})
})
