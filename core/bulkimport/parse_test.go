package bulkimport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	csv := "Name, Roll_Number ,Class\n" +
		"Jean,S-01,5A\n" +
		"Marie,S-02\n" // short row

	tbl, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV() failed: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(tbl.Rows))
	}
	if err = tbl.Require("name", "Roll_Number", "CLASS"); err != nil {
		t.Errorf("Require() failed: %v", err)
	}
	if got := tbl.Cell(tbl.Rows[0], "Roll_Number"); got != "S-01" {
		t.Errorf("Cell() = %q, want S-01", got)
	}
	// short rows read as blank past their last column
	if got := tbl.Cell(tbl.Rows[1], "Class"); got != "" {
		t.Errorf("Cell() = %q, want blank", got)
	}
}

func TestParseCSV_headerOnly(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("Name,Roll_Number,Class\n"))
	if err != nil {
		t.Fatalf("ParseCSV() failed: %v", err)
	}
	if len(tbl.Rows) != 0 {
		t.Errorf("Rows = %d, want 0", len(tbl.Rows))
	}
}

func TestParseCSV_empty(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Error("ParseCSV() succeeded on empty input")
	}
}

func TestTable_Require_missing(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("Name\n"))
	if err != nil {
		t.Fatalf("ParseCSV() failed: %v", err)
	}
	err = tbl.Require("Name", "Roll_Number", "Class")
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("Require() error = %v, want ParseError", err)
	}
	want := "import failed: row 1: missing required column(s): Roll_Number, Class"
	if got := perr.Error(); got != want {
		t.Errorf("Require() error = %q, want %q", got, want)
	}
}

func TestTable_FloatCell(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("Salary\n\"1,200.50\"\n\"\"\n750\nabc\n"))
	if err != nil {
		t.Fatalf("ParseCSV() failed: %v", err)
	}

	tests := []struct {
		row     int
		want    float64
		wantErr bool
	}{
		{0, 1200.50, false},
		{1, 0, false}, // blank
		{2, 750, false},
		{3, 0, true},
	}
	for _, tt := range tests {
		got, err := tbl.FloatCell(tbl.Rows[tt.row], "Salary")
		if tt.wantErr {
			if err == nil {
				t.Errorf("row %d: FloatCell() succeeded, want error", tt.row)
			}
			continue
		}
		if err != nil {
			t.Errorf("row %d: FloatCell() failed: %v", tt.row, err)
		} else if got != tt.want {
			t.Errorf("row %d: FloatCell() = %v, want %v", tt.row, got, tt.want)
		}
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	cells := [][]interface{}{
		{"Name", "Roll_Number", "Class"},
		{"Jean", "S-01", "5A"},
		{"Marie", "S-02", "6B"},
	}
	for i, row := range cells {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName() failed: %v", err)
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow() failed: %v", err)
		}
	}
	var buff bytes.Buffer
	if err := f.Write(&buff); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	tbl, err := ParseXLSX(&buff)
	if err != nil {
		t.Fatalf("ParseXLSX() failed: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(tbl.Rows))
	}
	if err = tbl.Require("Name", "Roll_Number", "Class"); err != nil {
		t.Errorf("Require() failed: %v", err)
	}
	if got := tbl.Cell(tbl.Rows[1], "roll_number"); got != "S-02" {
		t.Errorf("Cell() = %q, want S-02", got)
	}
}

func TestParseError(t *testing.T) {
	var perr ParseError
	if perr.OrNil() != nil {
		t.Error("OrNil() != nil with no rows")
	}
	perr.Add(2, "Name is required")
	perr.Addf(3, "duplicate roll number %q", "S-01")
	if err := perr.OrNil(); err == nil {
		t.Fatal("OrNil() = nil with rows")
	}
	want := `import failed: row 2: Name is required; row 3: duplicate roll number "S-01"`
	if got := perr.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
