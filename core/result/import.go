package result

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

// ImportDoc is a single pre-structured result document. Aggregates are
// trusted when all of total/max/percentage/grade are present; recomputed
// from the subjects mapping otherwise.
type ImportDoc struct {
	RollNumber  string         `json:"roll_number"`
	StudentName string         `json:"student_name"`
	Class       string         `json:"class"`
	Session     string         `json:"session"`
	Subjects    map[string]int `json:"subjects"`
	TotalMarks  *int           `json:"total_marks"`
	MaxMarks    *int           `json:"max_marks"`
	Percentage  *float64       `json:"percentage"`
	Grade       string         `json:"grade"`
	CreatedAt   *time.Time     `json:"date_created"`
}

// ImportJSON upserts one result document per call, keyed by roll number.
// Only roll_number and subjects are required; marks are not re-validated.
func (svc *Service) ImportJSON(ctx context.Context, r io.Reader) (StudentResult, error) {
	var doc ImportDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return StudentResult{}, core.NewValidationError(errors.Wrap(err, "decoding result document"))
	}

	var flds []core.FieldError
	doc.RollNumber = strings.TrimSpace(doc.RollNumber)
	if doc.RollNumber == "" {
		flds = append(flds, core.FieldError{Field: "roll_number", Error: "this field is required"})
	}
	if doc.Subjects == nil {
		flds = append(flds, core.FieldError{Field: "subjects", Error: "this field is required"})
	}
	if len(flds) > 0 {
		return StudentResult{}, core.NewValidationError(errors.New("invalid result document"), flds...)
	}

	now := time.Now().UTC()
	res := StudentResult{
		RollNumber:  doc.RollNumber,
		StudentName: doc.StudentName,
		Class:       doc.Class,
		Session:     doc.Session,
		Subjects:    doc.Subjects,
		Grade:       doc.Grade,
		CreatedAt:   now,
	}
	if doc.CreatedAt != nil {
		res.CreatedAt = doc.CreatedAt.UTC()
	}
	if res.Session == "" {
		res.Session = DefaultSession(now)
	}

	if doc.TotalMarks != nil && doc.MaxMarks != nil && doc.Percentage != nil && doc.Grade != "" {
		res.TotalMarks = *doc.TotalMarks
		res.MaxMarks = *doc.MaxMarks
		res.Percentage = *doc.Percentage
	} else {
		var total, max int
		for _, m := range doc.Subjects {
			total += m
		}
		max = 100 * len(doc.Subjects)
		var pct float64
		if max > 0 {
			pct = round2(float64(total) / float64(max) * 100)
		}
		res.TotalMarks, res.MaxMarks, res.Percentage, res.Grade = total, max, pct, GradeFor(pct)
	}

	// overwrite in place, carrying the stored version forward
	if existing, err := svc.repo.GetResult(ctx, res.RollNumber); err == nil {
		res.Version = existing.Version
	} else if errors.Cause(err) != ErrNotFound {
		return StudentResult{}, err
	}
	return svc.repo.SaveResult(ctx, res)
}
