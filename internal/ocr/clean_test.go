package ocr

import (
	"image"
	"image/color"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func grayImage(w, h int, fill func(x, y int) uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fill(x, y)})
		}
	}
	return img
}

var _ = Describe("CleanForRecognition", func() {
	It("produces a strictly binary image", func() {
		src := grayImage(8, 8, func(x, y int) uint8 {
			if x < 4 {
				return 40
			}
			return 200
		})

		bin := CleanForRecognition(src)
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				v := bin.GrayAt(x, y).Y
				Expect(v == 0 || v == 255).To(BeTrue(), "pixel (%d,%d) = %d", x, y, v)
			}
		}
	})

	It("separates the dark and light regions at the Otsu threshold", func() {
		src := grayImage(8, 8, func(x, y int) uint8 {
			if x < 4 {
				return 40
			}
			return 200
		})

		bin := CleanForRecognition(src)
		Expect(bin.GrayAt(1, 4).Y).To(Equal(uint8(0)))
		Expect(bin.GrayAt(6, 4).Y).To(Equal(uint8(255)))
	})
})

var _ = Describe("medianBlur3", func() {
	It("removes single-pixel speckle noise", func() {
		src := grayImage(7, 7, func(x, y int) uint8 {
			if x == 3 && y == 3 {
				return 255
			}
			return 10
		})

		out := medianBlur3(src)
		Expect(out.GrayAt(3, 3).Y).To(Equal(uint8(10)))
	})

	It("keeps a constant image constant", func() {
		src := grayImage(5, 5, func(x, y int) uint8 { return 128 })
		out := medianBlur3(src)
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				Expect(out.GrayAt(x, y).Y).To(Equal(uint8(128)))
			}
		}
	})
})
