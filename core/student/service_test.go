package student_test

import (
	"context"
	"strings"
	"testing"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/bulkimport"
	"github.com/trezcool/elimu/core/student"
	dummydb "github.com/trezcool/elimu/storage/database/dummy"
	testutil "github.com/trezcool/elimu/tests"
)

func setup(t *testing.T) (*student.Service, student.Repository) {
	t.Helper()

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	repo := dummydb.NewStudentRepository(db)
	return student.NewService(repo), repo
}

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	std, err := svc.Create(ctx, student.NewStudent{RollNumber: "R-001", Name: "Amina", Class: "5"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if std.Version == 0 {
		t.Error("Version not set")
	}

	// duplicate roll number is a field error
	_, err = svc.Create(ctx, student.NewStudent{RollNumber: "R-001", Name: "Badi", Class: "3"})
	if _, ok := err.(*core.ValidationError); !ok {
		t.Errorf("Create() duplicate error = %v, want ValidationError", err)
	}
}

func TestService_Update(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	std := testutil.CreateStudent(t, repo, "R-001", "Amina", "5")

	// blank fields keep their current values
	updated, err := svc.Update(ctx, std.RollNumber, student.UpdateStudent{Class: "6"})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Name != "Amina" {
		t.Errorf("Name = %s, want Amina", updated.Name)
	}
	if updated.Class != "6" {
		t.Errorf("Class = %s, want 6", updated.Class)
	}
	if updated.RollNumber != std.RollNumber {
		t.Errorf("RollNumber changed: %s", updated.RollNumber)
	}

	if _, err = svc.Update(ctx, "nope", student.UpdateStudent{Name: "X"}); err != student.ErrNotFound {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestService_Delete(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	std := testutil.CreateStudent(t, repo, "R-001", "Amina", "5")

	if err := svc.Delete(ctx, std.RollNumber); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := svc.Delete(ctx, std.RollNumber); err != student.ErrNotFound {
		t.Errorf("Delete() repeat error = %v, want ErrNotFound", err)
	}
}

func TestService_Import(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	// existing data is replaced wholesale
	testutil.CreateStudent(t, repo, "OLD-1", "Old", "1")

	parse := func(t *testing.T, csv string) *bulkimport.Table {
		t.Helper()
		tbl, err := bulkimport.ParseCSV(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseCSV() failed: %v", err)
		}
		return tbl
	}

	csv := "Name,Roll_Number,Class,Gender,Contact,Address\n" +
		"Amina,R-001,5,F,+243810000000,Gombe\n" +
		"Badi,R-002,3,M,,\n"
	if err := svc.Import(ctx, parse(t, csv)); err != nil {
		t.Fatalf("Import() failed: %v", err)
	}

	stds, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(stds) != 2 {
		t.Fatalf("List() = %d students, want 2", len(stds))
	}
	if stds[0].RollNumber != "R-001" || stds[1].RollNumber != "R-002" {
		t.Errorf("rolls = %s, %s", stds[0].RollNumber, stds[1].RollNumber)
	}
	if _, err = svc.Get(ctx, "OLD-1"); err != student.ErrNotFound {
		t.Errorf("Get(OLD-1) error = %v, want ErrNotFound", err)
	}

	// a header-only file empties the collection
	if err = svc.Import(ctx, parse(t, "Name,Roll_Number,Class\n")); err != nil {
		t.Fatalf("Import() header-only failed: %v", err)
	}
	if stds, err = svc.List(ctx); err != nil || len(stds) != 0 {
		t.Errorf("List() after header-only import = %v, %v; want empty", stds, err)
	}

	// missing columns
	if err = svc.Import(ctx, parse(t, "Name,Class\nAmina,5\n")); err == nil {
		t.Error("Import() without Roll_Number column succeeded, want error")
	}

	// row errors are collected and reject the import as a whole
	bad := "Name,Roll_Number,Class\n" +
		"Amina,R-001,5\n" +
		",R-002,3\n" + // missing name
		"Badi,,3\n" + // missing roll
		"Coco,R-001,2\n" // duplicate roll
	err = svc.Import(ctx, parse(t, bad))
	perr, ok := err.(*bulkimport.ParseError)
	if !ok {
		t.Fatalf("Import() error = %v, want ParseError", err)
	}
	if len(perr.Rows) != 3 {
		t.Errorf("ParseError rows = %+v, want 3", perr.Rows)
	}
	// nothing was written
	if stds, err = svc.List(ctx); err != nil || len(stds) != 0 {
		t.Errorf("List() after failed import = %v, %v; want empty", stds, err)
	}
}
