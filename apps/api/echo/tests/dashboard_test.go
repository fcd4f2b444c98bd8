package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/trezcool/elimu/core/admission"
	"github.com/trezcool/elimu/core/fee"
	"github.com/trezcool/elimu/core/staff"
	testutil "github.com/trezcool/elimu/tests"
)

func Test_dashboardApi(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateStaff(t, staffRepo, "Admin", "admin", "admin@test.cd", "", []string{staff.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	testutil.CreateStudent(t, studentRepo, "R-001", "Amina", "5")
	testutil.CreateStudent(t, studentRepo, "R-002", "Brian", "6")
	testutil.CreateTeacher(t, teacherRepo, "Ms. Kamau", "Math")
	testutil.CreateAdmission(t, admissionRepo, "Chipo", admission.StatusPending)
	testutil.CreateAdmission(t, admissionRepo, "David", admission.StatusApproved)

	now := time.Now().UTC()
	testutil.CreateFee(t, feeRepo, "R-001", 150, now.AddDate(0, 0, -30), fee.StatusPaid, now.AddDate(0, 0, -3))
	testutil.CreateFee(t, feeRepo, "R-002", 200, now.AddDate(0, 0, 30), fee.StatusPending)

	req, rec := newAuthRequest(http.MethodGet, "/api/admin/dashboard", adminToken)
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var stats struct {
		StudentCount      int       `json:"student_count"`
		TeacherCount      int       `json:"teacher_count"`
		PendingAdmissions int       `json:"pending_admissions"`
		Fees              fee.Stats `json:"fees"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v", err)
	}
	if stats.StudentCount != 2 || stats.TeacherCount != 1 || stats.PendingAdmissions != 1 {
		t.Errorf("failed! stats = %+v", stats)
	}
	if stats.Fees.TotalCount != 2 || stats.Fees.PaidCount != 1 {
		t.Errorf("failed! fee stats = %+v", stats.Fees)
	}
}
