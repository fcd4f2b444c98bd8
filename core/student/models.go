package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elimu/core"
)

// Student is a pupil record keyed by its roll number.
// Fees and results reference students by RollNumber.
type Student struct {
	RollNumber string `json:"roll_number"`
	Name       string `json:"name"`
	Class      string `json:"class"`
	Gender     string `json:"gender"`
	Contact    string `json:"contact"`
	Address    string `json:"address"`
	Version    int64  `json:"version"`
}

// NewStudent contains information needed to register a new Student.
type NewStudent struct {
	RollNumber string `json:"roll_number" validate:"required"`
	Name       string `json:"name" validate:"required,min=2"`
	Class      string `json:"class" validate:"required"`
	Gender     string `json:"gender"`
	Contact    string `json:"contact"`
	Address    string `json:"address"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.RollNumber = core.CleanString(ns.RollNumber)
	ns.Name = core.CleanString(ns.Name)
	ns.Class = core.CleanString(ns.Class)
	ns.Gender = core.CleanString(ns.Gender)
	ns.Contact = core.CleanString(ns.Contact)
	ns.Address = core.CleanString(ns.Address)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. Blank fields are left unchanged; the roll number is
// immutable (it keys fees and results).
type UpdateStudent struct {
	Name    string `json:"name" validate:"omitempty,min=2"`
	Class   string `json:"class"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.Class = core.CleanString(us.Class)
	us.Gender = core.CleanString(us.Gender)
	us.Contact = core.CleanString(us.Contact)
	us.Address = core.CleanString(us.Address)
	return validate.Struct(us)
}
