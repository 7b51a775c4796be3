package common_test

import (
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drtools/dr-invoice-tracker/internal/common"
)

var _ = Describe("LoadConfig", func() {
	It("applies defaults when the environment is empty", func() {
		cfg := common.LoadConfig()
		Expect(cfg.OCR.Pdftoppm).To(Equal("pdftoppm"))
		Expect(cfg.OCR.DPI).To(Equal(300))
		Expect(cfg.OCR.Timeout).To(Equal(2 * time.Minute))
		Expect(cfg.Invoice.CompanyName).To(Equal("TAFE Motors"))
		Expect(cfg.Output.Dir).To(Equal("output"))
	})

	It("reads overrides from the environment", func() {
		GinkgoT().Setenv("OCR_DPI", "150")
		GinkgoT().Setenv("OCR_TIMEOUT", "30s")
		GinkgoT().Setenv("OUTPUT_DIR", "/tmp/out")

		cfg := common.LoadConfig()
		Expect(cfg.OCR.DPI).To(Equal(150))
		Expect(cfg.OCR.Timeout).To(Equal(30 * time.Second))
		Expect(cfg.Output.Dir).To(Equal("/tmp/out"))
	})

	It("falls back to defaults on unparseable values", func() {
		GinkgoT().Setenv("OCR_DPI", "not-a-number")
		Expect(common.LoadConfig().OCR.DPI).To(Equal(300))
	})
})

var _ = Describe("Config.Validate", func() {
	It("accepts the defaults", func() {
		Expect(common.LoadConfig().Validate()).To(Succeed())
	})

	It("rejects a non-positive DPI", func() {
		cfg := common.LoadConfig()
		cfg.OCR.DPI = 0
		Expect(cfg.Validate()).To(MatchError(common.ErrInvalidInput))
	})

	It("rejects an empty output dir", func() {
		cfg := common.LoadConfig()
		cfg.Output.Dir = ""
		Expect(cfg.Validate()).To(MatchError(common.ErrInvalidInput))
	})
})

var _ = Describe("AppError", func() {
	It("prints code, message and cause", func() {
		err := common.NewAppError("EXTRACT_EMPTY", "no readable text", common.ErrNoUsableContent)
		Expect(err.Error()).To(Equal("EXTRACT_EMPTY: no readable text: no usable content"))
	})

	It("unwraps to its sentinel cause", func() {
		err := common.NewAppError("EXTRACT_EMPTY", "no readable text", common.ErrNoUsableContent)
		Expect(errors.Is(err, common.ErrNoUsableContent)).To(BeTrue())
	})

	It("keeps the chain through further wrapping", func() {
		err := fmt.Errorf("run pipeline: %w",
			common.NewAppError("EXTRACT_EMPTY", "no readable text", common.ErrNoUsableContent))
		Expect(errors.Is(err, common.ErrNoUsableContent)).To(BeTrue())
	})
})
