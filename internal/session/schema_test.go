package session_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drtools/dr-invoice-tracker/internal/session"
)

var _ = Describe("ValidatePromptJSON", func() {
	valid := []byte(`{
		"dr_no": "1234567890",
		"today_date": "14-03-2025",
		"bill_details": {"party_name": "TAFEMDU"}
	}`)

	It("accepts a document carrying the required fields", func() {
		Expect(session.ValidatePromptJSON(valid)).To(Succeed())
	})

	It("rejects a malformed date", func() {
		bad := []byte(`{
			"dr_no": "1234567890",
			"today_date": "2025-03-14",
			"bill_details": {"party_name": "TAFEMDU"}
		}`)
		Expect(session.ValidatePromptJSON(bad)).To(HaveOccurred())
	})

	It("rejects an empty party name", func() {
		bad := []byte(`{
			"dr_no": "1234567890",
			"today_date": "14-03-2025",
			"bill_details": {"party_name": ""}
		}`)
		Expect(session.ValidatePromptJSON(bad)).To(HaveOccurred())
	})

	It("rejects unknown top-level properties", func() {
		bad := []byte(`{
			"dr_no": "1234567890",
			"today_date": "14-03-2025",
			"bill_details": {"party_name": "TAFEMDU"},
			"surprise": true
		}`)
		Expect(session.ValidatePromptJSON(bad)).To(HaveOccurred())
	})

	It("rejects a non-numeric quantity", func() {
		bad := []byte(`{
			"dr_no": "1234567890",
			"today_date": "14-03-2025",
			"quantity": "ten",
			"bill_details": {"party_name": "TAFEMDU"}
		}`)
		Expect(session.ValidatePromptJSON(bad)).To(HaveOccurred())
	})
})
