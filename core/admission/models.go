package admission

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/core"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Admission is a submitted application awaiting a staff decision.
// Status only ever moves Pending -> Approved or Pending -> Rejected.
type Admission struct {
	ID              string      `json:"id"`
	StudentName     string      `json:"student_name"`
	DateOfBirth     time.Time   `json:"date_of_birth"` // UTC
	Grade           string      `json:"grade"`
	ParentName      string      `json:"parent_name"`
	ParentEmail     string      `json:"parent_email"`
	ParentPhone     string      `json:"parent_phone"`
	PreviousSchool  null.String `json:"previous_school"`
	Comments        null.String `json:"comments"`
	Status          Status      `json:"status"`
	ApplicationDate time.Time   `json:"application_date"` // UTC
	Version         int64       `json:"version"`
}

func (a Admission) IsDecided() bool {
	return a.Status == StatusApproved || a.Status == StatusRejected
}

// NewAdmission contains the public application form fields.
type NewAdmission struct {
	StudentName    string `json:"student_name" validate:"required,min=2"`
	DateOfBirth    string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Grade          string `json:"grade" validate:"required"`
	ParentName     string `json:"parent_name" validate:"required,min=2"`
	ParentEmail    string `json:"parent_email" validate:"required,email"`
	ParentPhone    string `json:"parent_phone" validate:"required,min=10"`
	PreviousSchool string `json:"previous_school"`
	Comments       string `json:"comments"`
}

func (na *NewAdmission) Validate(validate *validator.Validate) error {
	na.StudentName = core.CleanString(na.StudentName)
	na.DateOfBirth = core.CleanString(na.DateOfBirth)
	na.Grade = core.CleanString(na.Grade)
	na.ParentName = core.CleanString(na.ParentName)
	na.ParentEmail = core.CleanString(na.ParentEmail, true /* lower */)
	na.ParentPhone = core.CleanString(na.ParentPhone)
	na.PreviousSchool = core.CleanString(na.PreviousSchool)
	na.Comments = core.CleanString(na.Comments)
	return validate.Struct(na)
}

// StatusUpdate is the staff decision payload.
type StatusUpdate struct {
	Status Status `json:"status" validate:"required,oneof=Approved Rejected"`
}

func (su *StatusUpdate) Validate(validate *validator.Validate) error {
	return validate.Struct(su)
}
