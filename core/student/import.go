package student

import (
	"context"

	"github.com/trezcool/elimu/core/bulkimport"
)

// Expected bulk import columns (header matched case-insensitively).
const (
	colName       = "Name"
	colRollNumber = "Roll_Number"
	colClass      = "Class"
	colGender     = "Gender"
	colContact    = "Contact"
	colAddress    = "Address"
)

// Import replaces the whole student collection with the parsed rows.
// Any row error rejects the import as a whole; a header-only table
// empties the collection.
func (svc *Service) Import(ctx context.Context, tbl *bulkimport.Table) error {
	if err := tbl.Require(colName, colRollNumber, colClass); err != nil {
		return err
	}

	var perr bulkimport.ParseError
	seen := make(map[string]int, len(tbl.Rows)) // roll number -> row
	stds := make([]Student, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		rowNum := i + 2 // 1-based, after the header row
		roll := tbl.Cell(row, colRollNumber)
		if roll == "" {
			perr.Add(rowNum, "Roll_Number is required")
			continue
		}
		if prev, dup := seen[roll]; dup {
			perr.Addf(rowNum, "duplicate roll number %q (first seen on row %d)", roll, prev)
			continue
		}
		seen[roll] = rowNum

		name := tbl.Cell(row, colName)
		if name == "" {
			perr.Add(rowNum, "Name is required")
			continue
		}

		stds = append(stds, Student{
			RollNumber: roll,
			Name:       name,
			Class:      tbl.Cell(row, colClass),
			Gender:     tbl.Cell(row, colGender),
			Contact:    tbl.Cell(row, colContact),
			Address:    tbl.Cell(row, colAddress),
		})
	}
	if err := perr.OrNil(); err != nil {
		return err
	}
	return svc.repo.ReplaceAllStudents(ctx, stds)
}
