package fee

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/core"
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
	StatusOverdue Status = "Overdue"
)

// Fee is a single billing obligation tied to one student.
// StudentName and Class are snapshots taken at creation time; they are
// deliberately not kept in sync with later Student edits.
// PaymentDate is set if and only if Status is Paid.
type Fee struct {
	ID                string    `json:"id"`
	StudentRollNumber string    `json:"student_roll_number"`
	StudentName       string    `json:"student_name"`
	Class             string    `json:"class"`
	Amount            float64   `json:"amount"`
	DueDate           time.Time `json:"due_date"` // UTC
	Status            Status    `json:"status"`
	PaymentDate       null.Time `json:"payment_date"`
	CreatedAt         time.Time `json:"created_at"` // UTC
	Version           int64     `json:"version"`
}

// IsOverdue reports whether the fee counts as overdue at `now`: either the
// sweep already stamped it, or it is still Pending past its due date.
func (f Fee) IsOverdue(now time.Time) bool {
	if f.Status == StatusOverdue {
		return true
	}
	return f.Status == StatusPending && f.DueDate.Before(now)
}

// NewFee contains information needed to bill a student.
type NewFee struct {
	StudentRollNumber string  `json:"student_roll_number" validate:"required"`
	Amount            float64 `json:"amount" validate:"required,gt=0"`
	DueDate           string  `json:"due_date" validate:"required,datetime=2006-01-02"`
}

func (nf *NewFee) Validate(validate *validator.Validate) error {
	nf.StudentRollNumber = core.CleanString(nf.StudentRollNumber)
	nf.DueDate = core.CleanString(nf.DueDate)
	return validate.Struct(nf)
}
