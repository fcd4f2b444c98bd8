package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/elimu/core/admission"
	"github.com/trezcool/elimu/core/staff"
	testutil "github.com/trezcool/elimu/tests"
)

func Test_admissionApi(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateStaff(t, staffRepo, "Admin", "admin", "admin@test.cd", "", []string{staff.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	pending := testutil.CreateAdmission(t, admissionRepo, "Junior Kalala", admission.StatusPending)
	rejected := testutil.CreateAdmission(t, admissionRepo, "Grace Mwamba", admission.StatusRejected)

	tests := []httpTest{
		{
			name: "Auth required", method: http.MethodGet, path: "/api/admin/admissions",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Get all", method: http.MethodGet, path: "/api/admin/admissions", token: adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, []admission.Admission{pending, rejected}),
		},
		{
			name: "Retrieve", method: http.MethodGet, path: "/api/admin/admissions/" + pending.ID, token: adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, pending),
		},
		{
			name: "Invalid decision", method: http.MethodPut, path: "/api/admin/admissions/" + pending.ID + "/status", token: adminToken,
			body:     marchallObj(t, admission.StatusUpdate{Status: "Lol"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"status": "status must be one of [Approved Rejected]"}),
		},
		{
			name: "Approve", method: http.MethodPut, path: "/api/admin/admissions/" + pending.ID + "/status", token: adminToken,
			body:     marchallObj(t, admission.StatusUpdate{Status: admission.StatusApproved}),
			wantCode: http.StatusOK,
		},
		{
			name: "Decided applications cannot flip", method: http.MethodPut, path: "/api/admin/admissions/" + rejected.ID + "/status", token: adminToken,
			body:     marchallObj(t, admission.StatusUpdate{Status: admission.StatusApproved}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"status": "application has already been decided"}),
		},
		{
			name: "Delete", method: http.MethodDelete, path: "/api/admin/admissions/" + rejected.ID, token: adminToken,
			wantCode: http.StatusNoContent,
		},
		{
			name: "Delete unknown", method: http.MethodDelete, path: "/api/admin/admissions/" + rejected.ID, token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "admission not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			switch {
			case tt.name == "Approve":
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var adm admission.Admission
				if err := json.Unmarshal(rec.Body.Bytes(), &adm); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if adm.Status != admission.StatusApproved {
					t.Errorf("failed! status = %s; want Approved", adm.Status)
				}
			case tt.wantCode == http.StatusNoContent:
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
			default:
				checkCodeAndData(t, tt, rec)
			}
		})
	}
}
