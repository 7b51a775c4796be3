// drtally converts a scanned Delivery Request PDF into the review
// artifacts: the extraction spreadsheet, the Tally voucher XML, and the
// invoice summary.
//
// Usage:
//
//	drtally [-prompt edited.json] <input.pdf>
//
// Without -prompt the default prompt built from the extracted record is
// frozen as-is; with it, the operator-edited JSON is validated and used.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/drtools/dr-invoice-tracker/constants"
	"github.com/drtools/dr-invoice-tracker/internal/common"
	"github.com/drtools/dr-invoice-tracker/internal/extract"
	"github.com/drtools/dr-invoice-tracker/internal/ocr"
	"github.com/drtools/dr-invoice-tracker/internal/pdfsource"
	"github.com/drtools/dr-invoice-tracker/internal/project"
	"github.com/drtools/dr-invoice-tracker/internal/session"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	promptPath := flag.String("prompt", "", "operator-edited prompt JSON")
	flag.Parse()
	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "drtally [-prompt edited.json] <input.pdf>")
		os.Exit(2)
	}
	pdfPath := flag.Arg(0)
	if !constants.IsAllowedExt(filepath.Ext(pdfPath)) {
		logger.Error("unsupported document type", "path", pdfPath)
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file", "err", err)
	}
	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	recognizer := ocr.NewExtractor(ocr.Config{
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		Lang:      cfg.OCR.Lang,
		DPI:       cfg.OCR.DPI,
		MaxPages:  cfg.OCR.MaxPages,
		Timeout:   cfg.OCR.Timeout,
	}, logger)

	pipeline := extract.NewPipeline(pdfsource.NewOpener(), recognizer, logger)

	record, res, err := pipeline.Run(ctx, pdfPath)
	if err != nil {
		if errors.Is(err, common.ErrNoUsableContent) {
			logger.Error("could not extract readable text; try a higher-resolution scan",
				"path", pdfPath)
			os.Exit(1)
		}
		logger.Error("extraction failed", "path", pdfPath, "error", err)
		os.Exit(1)
	}
	logger.Info("extraction ok",
		"method", res.Method,
		"pages", res.Pages,
		"dr_no", record.Header.DRNo,
		"items", len(record.Items),
	)

	// One review cycle: begin a session, apply operator edits (if any),
	// freeze, generate.
	store := session.NewStore(session.PromptDefaults{
		VehicleNo: cfg.Invoice.DefaultVehicleNo,
		PartyCode: cfg.Invoice.DefaultPartyCode,
	})
	sess := store.Begin(record)
	defer store.Delete(sess.ID)

	if *promptPath != "" {
		edited, err := os.ReadFile(*promptPath)
		if err != nil {
			logger.Error("read prompt file", "path", *promptPath, "error", err)
			os.Exit(1)
		}
		if err := store.Verify(sess.ID, edited); err != nil {
			logger.Error("prompt rejected", "error", err)
			os.Exit(1)
		}
	} else {
		defaults, _ := json.Marshal(sess.Prompt)
		if err := store.Verify(sess.ID, defaults); err != nil {
			logger.Error("default prompt rejected", "error", err)
			os.Exit(1)
		}
	}
	sess, err = store.Get(sess.ID)
	if err != nil {
		logger.Error("session lost", "error", err)
		os.Exit(1)
	}

	master, err := project.LoadItemMasterSQLite(ctx, cfg.Invoice.ItemMasterDB)
	if err != nil {
		logger.Error("load item master", "error", err)
		os.Exit(1)
	}
	projector := project.NewProjector(master, cfg.Invoice.CompanyName, logger)

	dataPath, err := projector.WriteRecordXLSX(sess.Record, cfg.Output.Dir)
	if err != nil {
		logger.Error("write record xlsx", "error", err)
		os.Exit(1)
	}

	xlsxPath, err := projector.WriteInvoiceXLSX(sess.Record, sess.Prompt, cfg.Output.Dir)
	if err != nil {
		logger.Error("write invoice xlsx", "error", err)
		os.Exit(1)
	}

	env := projector.TallyXML(sess.Record, sess.Prompt)
	xmlPath, err := projector.WriteXML(env, cfg.Output.Dir, sess.Prompt.DRNo)
	if err != nil {
		logger.Error("write voucher xml", "error", err)
		os.Exit(1)
	}

	summary := project.InvoiceSummary(sess.Record, sess.Prompt)
	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))

	logger.Info("artifacts ready", "data_xlsx", dataPath, "invoice_xlsx", xlsxPath, "xml", xmlPath)
}
