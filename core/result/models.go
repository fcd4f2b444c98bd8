package result

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
)

// StudentResult is a per-student, per-session aggregation of subject marks.
// One document per student, keyed and overwritten by roll number.
type StudentResult struct {
	RollNumber  string         `json:"roll_number"`
	StudentName string         `json:"student_name"`
	Class       string         `json:"class"`
	Session     string         `json:"session"`
	Subjects    map[string]int `json:"subjects"`
	TotalMarks  int            `json:"total_marks"`
	MaxMarks    int            `json:"max_marks"` // 100 per subject
	Percentage  float64        `json:"percentage"`
	Grade       string         `json:"grade"`
	CreatedAt   time.Time      `json:"date_created"` // UTC
	Version     int64          `json:"version"`
}

// SubjectMarks is one (subject, marks) entry of an upsert; order matters
// only for duplicate names, where the last entry wins.
type SubjectMarks struct {
	Name  string `json:"name"`
	Marks int    `json:"marks" validate:"min=0"`
}

// UpsertResult is the staff result-entry payload.
type UpsertResult struct {
	RollNumber  string         `json:"roll_number" validate:"required"`
	StudentName string         `json:"student_name" validate:"required,min=2"`
	Class       string         `json:"class" validate:"required"`
	Session     string         `json:"session"`
	Subjects    []SubjectMarks `json:"subjects" validate:"required,min=1,dive"`
}

func (ur *UpsertResult) Validate(validate *validator.Validate) error {
	ur.RollNumber = core.CleanString(ur.RollNumber)
	ur.StudentName = core.CleanString(ur.StudentName)
	ur.Class = core.CleanString(ur.Class)
	ur.Session = core.CleanString(ur.Session)
	return validate.Struct(ur)
}

// GradeFor maps a percentage to its letter grade; lower bounds inclusive.
func GradeFor(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	case percentage >= 50:
		return "D"
	default:
		return "F"
	}
}

// DefaultSession labels the academic year starting in `now`'s calendar year.
func DefaultSession(now time.Time) string {
	return fmt.Sprintf("%d-%d", now.Year(), now.Year()+1)
}

// aggregate folds an ordered subject list into the stored mapping and the
// derived totals. Blank subject names are dropped silently; duplicate names
// last-write-wins. Each subject is out of 100 marks.
func aggregate(subjects []SubjectMarks) (map[string]int, int, int, float64) {
	marks := make(map[string]int, len(subjects))
	for _, sm := range subjects {
		name := strings.TrimSpace(sm.Name)
		if name == "" {
			continue
		}
		marks[name] = sm.Marks
	}

	var total int
	for _, m := range marks {
		total += m
	}
	max := 100 * len(marks)

	var pct float64
	if max > 0 {
		pct = round2(float64(total) / float64(max) * 100)
	}
	return marks, total, max, pct
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
