package ocr

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// stubRunner fakes the two external binaries: "render" writes page images
// under the prefix the extractor passes, "recognize" returns canned text.
type stubRunner struct {
	renderPages  int
	renderErr    error
	recognized   string
	recognizeErr error

	calls []string
}

func (r *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, name)
	switch name {
	case "render":
		if r.renderErr != nil {
			return nil, []byte("render blew up"), r.renderErr
		}
		prefix := args[len(args)-1]
		img := image.NewGray(image.Rect(0, 0, 4, 4))
		for i := 1; i <= r.renderPages; i++ {
			if err := imaging.Save(img, fmt.Sprintf("%s-%d.png", prefix, i)); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	case "recognize":
		return []byte(r.recognized), nil, r.recognizeErr
	}
	return nil, nil, fmt.Errorf("unexpected command %q", name)
}

var _ = Describe("Extractor", func() {
	newStubbed := func(r Runner) *Extractor {
		e := NewExtractor(Config{Pdftoppm: "render", Tesseract: "recognize"}, nil)
		e.runner = r
		return e
	}

	It("fills config defaults at construction", func() {
		e := NewExtractor(Config{}, nil)
		Expect(e.cfg.Pdftoppm).To(Equal("pdftoppm"))
		Expect(e.cfg.Tesseract).To(Equal("tesseract"))
		Expect(e.cfg.Lang).To(Equal("eng"))
		Expect(e.cfg.DPI).To(Equal(300))
	})

	It("recognizes every rendered page and joins the text", func() {
		r := &stubRunner{renderPages: 2, recognized: "PAGE TEXT"}
		e := newStubbed(r)

		text, err := e.RecognizeDocument(context.Background(), "dr.pdf")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("\nPAGE TEXT\nPAGE TEXT"))
		Expect(r.calls).To(Equal([]string{"render", "recognize", "recognize"}))
	})

	It("caps the page count at MaxPages", func() {
		r := &stubRunner{renderPages: 3, recognized: "X"}
		e := NewExtractor(Config{Pdftoppm: "render", Tesseract: "recognize", MaxPages: 1}, nil)
		e.runner = r

		text, err := e.RecognizeDocument(context.Background(), "dr.pdf")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("\nX"))
	})

	It("fails when rendering produced no pages", func() {
		e := newStubbed(&stubRunner{renderPages: 0})
		_, err := e.RecognizeDocument(context.Background(), "dr.pdf")
		Expect(err).To(MatchError(ContainSubstring("no pages rendered")))
	})

	It("wraps a renderer failure with its stderr", func() {
		e := newStubbed(&stubRunner{renderErr: errors.New("exit status 1")})
		_, err := e.RecognizeDocument(context.Background(), "dr.pdf")
		Expect(err).To(MatchError(ContainSubstring("pdftoppm")))
		Expect(err).To(MatchError(ContainSubstring("render blew up")))
	})

	It("skips pages whose recognition fails instead of aborting", func() {
		r := &stubRunner{renderPages: 1, recognizeErr: errors.New("exit status 1")}
		e := newStubbed(r)

		text, err := e.RecognizeDocument(context.Background(), "dr.pdf")
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(BeEmpty())
	})
})
