package testutil

import (
	"context"
	"log"
	"net/mail"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/admission"
	"github.com/trezcool/elimu/core/fee"
	"github.com/trezcool/elimu/core/result"
	"github.com/trezcool/elimu/core/staff"
	"github.com/trezcool/elimu/core/student"
	"github.com/trezcool/elimu/core/teacher"
)

// NewConfig returns a self-contained configuration for tests; nothing is
// read from the environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:                       "TEST",
		TestMode:                  true,
		AppName:                   "Elimu",
		Build:                     "test",
		SecretKey:                 []byte("secret"),
		SiteBaseURL:               "http://localhost:3000",
		DefaultFromEmail:          mail.Address{Name: "Elimu", Address: "noreply@test.cd"},
		ContactEmail:              mail.Address{Name: "Elimu Office", Address: "office@test.cd"},
		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

// Logger forwards everything to the standard logger.
type Logger struct{}

var _ core.Logger = (*Logger)(nil)

func (Logger) Debug(msg string, args ...interface{}) { log.Println(append([]interface{}{msg}, args...)...) }
func (Logger) Info(msg string, args ...interface{})  { log.Println(append([]interface{}{msg}, args...)...) }
func (Logger) Warn(msg string, args ...interface{})  { log.Println(append([]interface{}{msg}, args...)...) }
func (Logger) Error(msg string, args ...interface{}) { log.Println(append([]interface{}{msg}, args...)...) }
func (Logger) Fatal(msg string, args ...interface{}) { log.Fatalln(append([]interface{}{msg}, args...)...) }

func newID(t *testing.T) string {
	t.Helper()
	id, err := uuid.NewUUID()
	if err != nil {
		t.Fatalf("newID() failed: %v", err)
	}
	return id.String()
}

func CreateStaff(
	t *testing.T,
	repo staff.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
) staff.Staff {
	t.Helper()

	now := time.Now().UTC()
	acc := staff.Staff{
		ID:        newID(t),
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if pwd != "" {
		if err := acc.SetPassword(pwd); err != nil {
			t.Fatalf("CreateStaff() failed: %v", err)
		}
	}
	acc, err := repo.SaveStaff(context.Background(), acc)
	if err != nil {
		t.Fatalf("CreateStaff() failed: %v", err)
	}
	return acc
}

func CreateStudent(t *testing.T, repo student.Repository, roll, name, class string) student.Student {
	t.Helper()

	std, err := repo.SaveStudent(context.Background(), student.Student{
		RollNumber: roll,
		Name:       name,
		Class:      class,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateTeacher(t *testing.T, repo teacher.Repository, name, subject string) teacher.Teacher {
	t.Helper()

	tch, err := repo.SaveTeacher(context.Background(), teacher.Teacher{
		ID:          newID(t),
		Name:        name,
		Subject:     subject,
		Status:      teacher.StatusActive,
		JoiningDate: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return tch
}

func CreateAdmission(
	t *testing.T,
	repo admission.Repository,
	studentName string,
	status admission.Status,
	applicationDate ...time.Time,
) admission.Admission {
	t.Helper()

	applied := time.Now().UTC()
	if len(applicationDate) > 0 {
		applied = applicationDate[0].UTC()
	}
	adm, err := repo.SaveAdmission(context.Background(), admission.Admission{
		ID:              newID(t),
		StudentName:     studentName,
		DateOfBirth:     time.Date(2018, time.March, 14, 0, 0, 0, 0, time.UTC),
		Grade:           "1",
		ParentName:      "Parent of " + studentName,
		ParentEmail:     "parent@test.cd",
		ParentPhone:     "+243810000000",
		Status:          status,
		ApplicationDate: applied,
	})
	if err != nil {
		t.Fatalf("CreateAdmission() failed: %v", err)
	}
	return adm
}

func CreateFee(
	t *testing.T,
	repo fee.Repository,
	roll string,
	amount float64,
	dueDate time.Time,
	status fee.Status,
	paymentDate ...time.Time,
) fee.Fee {
	t.Helper()

	f := fee.Fee{
		ID:                newID(t),
		StudentRollNumber: roll,
		StudentName:       "Student " + roll,
		Class:             "1",
		Amount:            amount,
		DueDate:           dueDate.UTC(),
		Status:            status,
		CreatedAt:         time.Now().UTC(),
	}
	if len(paymentDate) > 0 {
		f.PaymentDate = null.TimeFrom(paymentDate[0].UTC())
	}
	f, err := repo.SaveFee(context.Background(), f)
	if err != nil {
		t.Fatalf("CreateFee() failed: %v", err)
	}
	return f
}

func CreateResult(
	t *testing.T,
	repo result.Repository,
	roll, name, class string,
	subjects map[string]int,
) result.StudentResult {
	t.Helper()

	var total int
	for _, marks := range subjects {
		total += marks
	}
	maxMarks := 100 * len(subjects)
	var pct float64
	if maxMarks > 0 {
		pct = float64(total) / float64(maxMarks) * 100
	}
	res, err := repo.SaveResult(context.Background(), result.StudentResult{
		RollNumber:  roll,
		StudentName: name,
		Class:       class,
		Session:     "2026-2027",
		Subjects:    subjects,
		TotalMarks:  total,
		MaxMarks:    maxMarks,
		Percentage:  pct,
		Grade:       result.GradeFor(pct),
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateResult() failed: %v", err)
	}
	return res
}
