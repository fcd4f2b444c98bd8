package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/elimu/core/result"
	"github.com/trezcool/elimu/core/staff"
	testutil "github.com/trezcool/elimu/tests"
)

func Test_resultApi(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateStaff(t, staffRepo, "Admin", "admin", "admin@test.cd", "", []string{staff.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	existing := testutil.CreateResult(t, resultRepo, "R-002", "Badi", "3", map[string]int{"Math": 70})

	upsert := result.UpsertResult{
		RollNumber:  "R-001",
		StudentName: "Amina",
		Class:       "5",
		Subjects: []result.SubjectMarks{
			{Name: "Math", Marks: 80},
			{Name: "English", Marks: 90},
		},
	}

	tests := []httpTest{
		{
			name: "Auth required", method: http.MethodGet, path: "/api/admin/results",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Subjects required", method: http.MethodPut, path: "/api/admin/results", token: adminToken,
			body:     marchallObj(t, result.UpsertResult{RollNumber: "R-001", StudentName: "Amina", Class: "5"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"subjects": "this field is required"}),
		},
		{name: "Upsert", method: http.MethodPut, path: "/api/admin/results", token: adminToken, body: marchallObj(t, upsert), wantCode: http.StatusOK},
		{
			name: "Retrieve", method: http.MethodGet, path: "/api/admin/results/R-002", token: adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, existing),
		},
		{
			name: "Delete", method: http.MethodDelete, path: "/api/admin/results/R-002", token: adminToken,
			wantCode: http.StatusNoContent,
		},
		{
			name: "Delete unknown", method: http.MethodDelete, path: "/api/admin/results/R-002", token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "result not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			switch tt.name {
			case "Upsert":
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var res result.StudentResult
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if res.TotalMarks != 170 || res.MaxMarks != 200 || res.Percentage != 85 || res.Grade != "A" {
					t.Errorf("failed! aggregates = %+v", res)
				}
			case "Delete":
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
			default:
				checkCodeAndData(t, tt, rec)
			}
		})
	}
}

func Test_resultApi_importDoc(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateStaff(t, staffRepo, "Admin", "admin", "admin@test.cd", "", []string{staff.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	tests := []struct {
		name     string
		body     []byte
		wantCode int
	}{
		{name: "invalid document", body: []byte("lol"), wantCode: http.StatusBadRequest},
		{
			name:     "document imported",
			body:     []byte(`{"roll_number":"R-001","student_name":"Amina","class":"5","subjects":{"Math":60}}`),
			wantCode: http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/admin/results/import", adminToken, tt.body)
			app.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				var res result.StudentResult
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if res.RollNumber != "R-001" || res.Grade != "C" {
					t.Errorf("failed! imported result = %+v", res)
				}
			}
		})
	}
}
