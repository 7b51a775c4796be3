package project

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Placeholder entry values used when a part is not in the master.
const (
	DefaultHSNCode  = "8409991090"
	DefaultGSTRate  = 5.0
	DefaultUnitRate = 2003.30
)

// ItemMasterEntry is the canonical record for a part number.
type ItemMasterEntry struct {
	Name     string
	HSNCode  string
	GSTRate  float64
	UnitRate float64
}

// ItemMaster maps part number to its canonical entry. It is built once
// and injected into the projector; the projector never mutates it.
type ItemMaster map[string]ItemMasterEntry

// SeedItemMaster returns the built-in entries used when no external
// master is configured.
func SeedItemMaster() ItemMaster {
	return ItemMaster{
		"1816A1810169": {
			Name:     "ASSY. SUCTION PIPE - STEERING PUMP",
			HSNCode:  "8409991090",
			GSTRate:  5,
			UnitRate: 2003.30,
		},
	}
}

// Lookup resolves a part number. Absent parts get a placeholder entry
// built from the record's own part name and the default tax values.
func (m ItemMaster) Lookup(partNo, fallbackName string) ItemMasterEntry {
	if e, ok := m[partNo]; ok {
		return e
	}
	name := fallbackName
	if name == "" {
		name = "Unknown Part"
	}
	return ItemMasterEntry{
		Name:     name,
		HSNCode:  DefaultHSNCode,
		GSTRate:  DefaultGSTRate,
		UnitRate: DefaultUnitRate,
	}
}

// LoadItemMasterSQLite reads the part master from a sqlite database.
// An empty path returns the built-in seed entries.
func LoadItemMasterSQLite(ctx context.Context, path string) (ItemMaster, error) {
	if path == "" {
		return SeedItemMaster(), nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open item master db: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx,
		`SELECT part_no, name, hsn_code, gst_rate, unit_rate FROM item_master`)
	if err != nil {
		return nil, fmt.Errorf("query item master: %w", err)
	}
	defer func() { _ = rows.Close() }()

	master := make(ItemMaster)
	for rows.Next() {
		var partNo string
		var e ItemMasterEntry
		if err := rows.Scan(&partNo, &e.Name, &e.HSNCode, &e.GSTRate, &e.UnitRate); err != nil {
			return nil, fmt.Errorf("scan item master row: %w", err)
		}
		master[partNo] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item master: %w", err)
	}
	return master, nil
}
