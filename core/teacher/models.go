package teacher

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusOnLeave  Status = "On-Leave"
	StatusResigned Status = "Resigned"
)

var statuses = []Status{StatusActive, StatusOnLeave, StatusResigned}

func (s Status) Valid() bool {
	for _, known := range statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Teacher is a staff-room record; unrelated to admin accounts (core/staff).
type Teacher struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Salary      float64   `json:"salary"`
	PhotoPath   string    `json:"photo_path"`
	JoiningDate time.Time `json:"joining_date"` // UTC
	Status      Status    `json:"status"`
	Version     int64     `json:"version"`
}

// NewTeacher contains information needed to register a new Teacher.
type NewTeacher struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Subject     string  `json:"subject" validate:"required"`
	Email       string  `json:"email" validate:"omitempty,email"`
	Phone       string  `json:"phone"`
	Salary      float64 `json:"salary" validate:"omitempty,gt=0"`
	PhotoPath   string  `json:"photo_path"`
	JoiningDate string  `json:"joining_date" validate:"omitempty,datetime=2006-01-02"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Subject = core.CleanString(nt.Subject)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Phone = core.CleanString(nt.Phone)
	nt.JoiningDate = core.CleanString(nt.JoiningDate)
	return validate.Struct(nt)
}

// UpdateTeacher defines what information may be provided to modify an
// existing Teacher. Blank fields are left unchanged.
type UpdateTeacher struct {
	Name      string  `json:"name" validate:"omitempty,min=2"`
	Subject   string  `json:"subject"`
	Email     string  `json:"email" validate:"omitempty,email"`
	Phone     string  `json:"phone"`
	Salary    float64 `json:"salary" validate:"omitempty,gt=0"`
	PhotoPath string  `json:"photo_path"`
	Status    Status  `json:"status"`
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate) error {
	ut.Name = core.CleanString(ut.Name)
	ut.Subject = core.CleanString(ut.Subject)
	ut.Email = core.CleanString(ut.Email, true /* lower */)
	ut.Phone = core.CleanString(ut.Phone)
	if err := validate.Struct(ut); err != nil {
		return err
	}
	if ut.Status != "" && !ut.Status.Valid() {
		return core.NewValidationError(nil, core.FieldError{Field: "status", Error: "unknown status"})
	}
	return nil
}
