package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/elimu/core/staff"
	"github.com/trezcool/elimu/core/teacher"
	testutil "github.com/trezcool/elimu/tests"
)

func Test_teacherApi(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateStaff(t, staffRepo, "Admin", "admin", "admin@test.cd", "", []string{staff.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	ilunga := testutil.CreateTeacher(t, teacherRepo, "M. Ilunga", "Math")

	tests := []httpTest{
		{
			name: "Auth required", method: http.MethodGet, path: "/api/admin/teachers",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Get all", method: http.MethodGet, path: "/api/admin/teachers", token: adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, []teacher.Teacher{ilunga}),
		},
		{
			name: "Retrieve", method: http.MethodGet, path: "/api/admin/teachers/" + ilunga.ID, token: adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, ilunga),
		},
		{
			name: "Create", method: http.MethodPost, path: "/api/admin/teachers", token: adminToken,
			body:     marchallObj(t, teacher.NewTeacher{Name: "Mme. Mbuyi", Subject: "English", Salary: 900}),
			wantCode: http.StatusCreated,
		},
		{
			name: "Delete", method: http.MethodDelete, path: "/api/admin/teachers/" + ilunga.ID, token: adminToken,
			wantCode: http.StatusNoContent,
		},
		{
			name: "Delete unknown", method: http.MethodDelete, path: "/api/admin/teachers/" + ilunga.ID, token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "teacher not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			switch tt.wantCode {
			case http.StatusCreated:
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var tch teacher.Teacher
				if err := json.Unmarshal(rec.Body.Bytes(), &tch); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if tch.ID == "" || tch.Status != teacher.StatusActive {
					t.Errorf("failed! created teacher = %+v", tch)
				}
			case http.StatusNoContent:
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
			default:
				checkCodeAndData(t, tt, rec)
			}
		})
	}
}

func Test_teacherApi_import(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateStaff(t, staffRepo, "Admin", "admin", "admin@test.cd", "", []string{staff.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	csv := "Name,Teacher_ID,Subject,Salary\n" +
		"M. Ilunga,T-01,Math,\"1,200.50\"\n"
	req, rec := newUploadRequest(t, "/api/admin/teachers/import", adminToken, "teachers.csv", []byte(csv))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}

	req, rec = newAuthRequest(http.MethodGet, "/api/admin/teachers/T-01", adminToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	var tch teacher.Teacher
	if err := json.Unmarshal(rec.Body.Bytes(), &tch); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v", err)
	}
	if tch.Salary != 1200.50 {
		t.Errorf("failed! Salary = %v; want 1200.50", tch.Salary)
	}
}
