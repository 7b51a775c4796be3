// Package ocr implements the rasterize-and-recognize fallback stage:
// pdftoppm renders pages, each raster is cleaned up, tesseract recognizes
// the text. External binaries run behind the Runner interface.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang     string // default "eng"
	DPI      int    // rasterization DPI, default 300
	MaxPages int    // 0 = no limit

	Timeout time.Duration // bound on the whole render+recognize stage
}

type Extractor struct {
	cfg    Config
	runner Runner
	log    *slog.Logger
}

func NewExtractor(cfg Config, log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, log: log}
}

// RecognizeDocument renders every page of the document to an image,
// cleans it up, and runs text recognition. Pages that fail recognition
// are skipped; the stage as a whole only errors when rendering produced
// nothing at all.
func (e *Extractor) RecognizeDocument(ctx context.Context, path string) (string, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}
	start := time.Now()

	tmpDir, err := os.MkdirTemp("", "dr-ocr-*")
	if err != nil {
		return "", err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", fmt.Errorf("pdftoppm: %w (%s)", err, truncate(string(errb), 512))
	}

	// collect generated pngs (prefix-1.png, prefix-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	for _, img := range matches {
		cleaned, err := cleanImageFile(img)
		if err != nil {
			e.log.Warn("ocr.clean.failed", "image", img, "err", err)
			cleaned = img
		}
		txt, err := e.tesseract(ctx, cleaned)
		if err != nil {
			e.log.Warn("ocr.recognize.failed", "image", cleaned, "err", err)
			continue
		}
		b.WriteString("\n")
		b.WriteString(txt)
	}

	e.log.Info("ocr.done",
		"path", path,
		"pages", len(matches),
		"chars", b.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b.String(), nil
}

func (e *Extractor) tesseract(ctx context.Context, imgPath string) (string, error) {
	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, imgPath, "stdout", "-l", e.cfg.Lang)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, truncate(string(errb), 512))
	}
	return string(out), nil
}
