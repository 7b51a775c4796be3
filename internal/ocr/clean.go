package ocr

import (
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// cleanImageFile prepares one rendered page for recognition: grayscale,
// 3x3 median blur, Otsu binarization. Returns the path of the cleaned
// image, written next to the input.
func cleanImageFile(path string) (string, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("open page image: %w", err)
	}

	bin := CleanForRecognition(src)

	out := strings.TrimSuffix(path, ".png") + "-bin.png"
	if err := imaging.Save(bin, out); err != nil {
		return "", fmt.Errorf("save cleaned image: %w", err)
	}
	return out, nil
}

// CleanForRecognition runs the raster clean-up stages on a page image.
func CleanForRecognition(src image.Image) *image.Gray {
	gray := toGray(imaging.Grayscale(src))
	blurred := medianBlur3(gray)
	return binarizeOtsu(blurred)
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}

// medianBlur3 applies a 3x3 median filter; border pixels clamp to the
// image edge.
func medianBlur3(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)
	var window [9]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					sx := clamp(x+dx, b.Min.X, b.Max.X-1)
					sy := clamp(y+dy, b.Min.Y, b.Max.Y-1)
					window[n] = int(src.GrayAt(sx, sy).Y)
					n++
				}
			}
			vals := window[:]
			sort.Ints(vals)
			dst.SetGray(x, y, color.Gray{Y: uint8(vals[4])})
		}
	}
	return dst
}

// binarizeOtsu thresholds the image at the level that maximizes
// between-class variance.
func binarizeOtsu(src *image.Gray) *image.Gray {
	b := src.Bounds()

	var hist [256]int
	total := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[src.GrayAt(x, y).Y]++
			total++
		}
	}
	if total == 0 {
		return src
	}

	var sum float64
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var sumB, wB float64
	var maxVar float64
	threshold := 0
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		v := wB * wF * (mB - mF) * (mB - mF)
		if v > maxVar {
			maxVar = v
			threshold = t
		}
	}

	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if int(src.GrayAt(x, y).Y) > threshold {
				dst.SetGray(x, y, color.Gray{Y: 255})
			} else {
				dst.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
