package project_test

import (
	"context"
	"database/sql"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/drtools/dr-invoice-tracker/internal/project"
)

var _ = Describe("ItemMaster", func() {
	It("returns the stored entry for a known part", func() {
		e := project.SeedItemMaster().Lookup("1816A1810169", "ignored")
		Expect(e.Name).To(Equal("ASSY. SUCTION PIPE - STEERING PUMP"))
		Expect(e.UnitRate).To(Equal(2003.30))
	})

	It("builds a placeholder from the record's part name for unknown parts", func() {
		e := project.SeedItemMaster().Lookup("NOPE-123", "OIL PUMP")
		Expect(e.Name).To(Equal("OIL PUMP"))
		Expect(e.HSNCode).To(Equal(project.DefaultHSNCode))
		Expect(e.GSTRate).To(Equal(project.DefaultGSTRate))
	})

	It("falls back to a generic name when none was extracted", func() {
		e := project.SeedItemMaster().Lookup("NOPE-123", "")
		Expect(e.Name).To(Equal("Unknown Part"))
	})
})

var _ = Describe("LoadItemMasterSQLite", func() {
	It("returns the seed entries for an empty path", func() {
		m, err := project.LoadItemMasterSQLite(context.Background(), "")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(HaveKey("1816A1810169"))
	})

	It("loads every row from the item_master table", func() {
		path := filepath.Join(GinkgoT().TempDir(), "master.db")

		db, err := sql.Open("sqlite", path)
		Expect(err).NotTo(HaveOccurred())
		_, err = db.Exec(`CREATE TABLE item_master (
			part_no TEXT PRIMARY KEY,
			name TEXT,
			hsn_code TEXT,
			gst_rate REAL,
			unit_rate REAL
		)`)
		Expect(err).NotTo(HaveOccurred())
		_, err = db.Exec(
			`INSERT INTO item_master VALUES (?, ?, ?, ?, ?)`,
			"8409B1100M5", "OIL PUMP", "8413302000", 18.0, 950.50,
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Close()).To(Succeed())

		m, err := project.LoadItemMasterSQLite(context.Background(), path)
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(HaveLen(1))
		Expect(m["8409B1100M5"].GSTRate).To(Equal(18.0))
		Expect(m["8409B1100M5"].UnitRate).To(Equal(950.50))
	})
})
