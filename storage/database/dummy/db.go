package dummydb

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/admission"
	"github.com/trezcool/elimu/core/fee"
	"github.com/trezcool/elimu/core/result"
	"github.com/trezcool/elimu/core/settings"
	"github.com/trezcool/elimu/core/staff"
	"github.com/trezcool/elimu/core/student"
	"github.com/trezcool/elimu/core/teacher"
)

type (
	DB struct {
		student   *studentTable
		teacher   *teacherTable
		admission *admissionTable
		fee       *feeTable
		result    *resultTable
		settings  *settingsTable
		staff     *staffTable
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}
	teacherTable struct {
		sync.RWMutex
		table map[string]*teacher.Teacher
	}
	admissionTable struct {
		sync.RWMutex
		table map[string]*admission.Admission
	}
	feeTable struct {
		sync.RWMutex
		table map[string]*fee.Fee
	}
	resultTable struct {
		sync.RWMutex
		table map[string]*result.StudentResult
	}
	settingsTable struct {
		sync.RWMutex
		current *settings.Settings
	}
	staffTable struct {
		sync.RWMutex
		table map[string]*staff.Staff
	}
)

func Open() (*DB, error) {
	db := &DB{
		student:   &studentTable{table: make(map[string]*student.Student)},
		teacher:   &teacherTable{table: make(map[string]*teacher.Teacher)},
		admission: &admissionTable{table: make(map[string]*admission.Admission)},
		fee:       &feeTable{table: make(map[string]*fee.Fee)},
		result:    &resultTable{table: make(map[string]*result.StudentResult)},
		settings:  &settingsTable{},
		staff:     &staffTable{table: make(map[string]*staff.Staff)},
	}
	return db, nil
}

// nextVersion applies the store's write rule: version 0 overwrites
// unconditionally, any other version must match the stored one.
// current is 0 when the document does not exist yet.
func nextVersion(current, incoming int64) (int64, error) {
	if incoming == 0 {
		return current + 1, nil
	}
	if current == 0 {
		return 0, errNoDoc
	}
	if incoming != current {
		return 0, core.ErrConflict
	}
	return current + 1, nil
}

// errNoDoc signals a versioned write against a missing document; each
// repository maps it to its collection's not-found error.
var errNoDoc = errors.New("document not found")
