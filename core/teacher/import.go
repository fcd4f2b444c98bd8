package teacher

import (
	"context"
	"time"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/bulkimport"
)

// Expected bulk import columns (header matched case-insensitively).
const (
	colName       = "Name"
	colTeacherID  = "Teacher_ID"
	colSubject    = "Subject"
	colContact    = "Contact"
	colSalary     = "Salary"
	colPhotoPath  = "Photo_Path"
	colDateJoined = "Date_Joined" // optional
)

// Import replaces the whole teacher collection with the parsed rows.
// Any row error rejects the import as a whole; a header-only table
// empties the collection.
func (svc *Service) Import(ctx context.Context, tbl *bulkimport.Table) error {
	if err := tbl.Require(colName, colTeacherID, colSubject); err != nil {
		return err
	}

	var perr bulkimport.ParseError
	seen := make(map[string]int, len(tbl.Rows))
	tchs := make([]Teacher, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		rowNum := i + 2
		id := tbl.Cell(row, colTeacherID)
		if id == "" {
			perr.Add(rowNum, "Teacher_ID is required")
			continue
		}
		if prev, dup := seen[id]; dup {
			perr.Addf(rowNum, "duplicate teacher ID %q (first seen on row %d)", id, prev)
			continue
		}
		seen[id] = rowNum

		name := tbl.Cell(row, colName)
		if name == "" {
			perr.Add(rowNum, "Name is required")
			continue
		}

		salary, err := tbl.FloatCell(row, colSalary)
		if err != nil {
			perr.Add(rowNum, err.Error())
			continue
		}

		joined := time.Now().UTC()
		if val := tbl.Cell(row, colDateJoined); val != "" {
			joined, err = core.ParseDate(val)
			if err != nil {
				perr.Addf(rowNum, "column %q: %q is not a date (want YYYY-MM-DD)", colDateJoined, val)
				continue
			}
		}

		tchs = append(tchs, Teacher{
			ID:          id,
			Name:        name,
			Subject:     tbl.Cell(row, colSubject),
			Phone:       tbl.Cell(row, colContact),
			Salary:      salary,
			PhotoPath:   tbl.Cell(row, colPhotoPath),
			JoiningDate: joined,
			Status:      StatusActive,
		})
	}
	if err := perr.OrNil(); err != nil {
		return err
	}
	return svc.repo.ReplaceAllTeachers(ctx, tchs)
}
