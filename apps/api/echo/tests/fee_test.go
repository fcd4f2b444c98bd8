package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/trezcool/elimu/core/fee"
	"github.com/trezcool/elimu/core/staff"
	testutil "github.com/trezcool/elimu/tests"
)

func Test_feeApi(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateStaff(t, staffRepo, "Admin", "admin", "admin@test.cd", "", []string{staff.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	testutil.CreateStudent(t, studentRepo, "R-001", "Amina", "5")

	now := time.Now().UTC()
	paid := testutil.CreateFee(t, feeRepo, "R-001", 150, now.AddDate(0, 0, -30), fee.StatusPaid, now.AddDate(0, 0, -10))
	pending := testutil.CreateFee(t, feeRepo, "R-001", 200, now.AddDate(0, 0, 30), fee.StatusPending)

	tests := []httpTest{
		{
			name: "Auth required", method: http.MethodGet, path: "/api/admin/fees",
			wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken),
		},
		{
			name: "Get all", method: http.MethodGet, path: "/api/admin/fees", token: adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, []fee.Fee{pending, paid}),
		},
		{
			name: "Retrieve", method: http.MethodGet, path: "/api/admin/fees/" + paid.ID, token: adminToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, paid),
		},
		{
			name: "Zero amount rejected", method: http.MethodPost, path: "/api/admin/fees", token: adminToken,
			body:     marchallObj(t, fee.NewFee{StudentRollNumber: "R-001", Amount: 0, DueDate: "2026-10-01"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"amount": "this field is required"}),
		},
		{
			name: "Negative amount rejected", method: http.MethodPost, path: "/api/admin/fees", token: adminToken,
			body:     marchallObj(t, fee.NewFee{StudentRollNumber: "R-001", Amount: -50, DueDate: "2026-10-01"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"amount": "amount must be greater than 0"}),
		},
		{
			name: "Unknown student rejected", method: http.MethodPost, path: "/api/admin/fees", token: adminToken,
			body:     marchallObj(t, fee.NewFee{StudentRollNumber: "lol", Amount: 100, DueDate: "2026-10-01"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"student_roll_number": "no student with this roll number"}),
		},
		{
			name: "Create", method: http.MethodPost, path: "/api/admin/fees", token: adminToken,
			body:     marchallObj(t, fee.NewFee{StudentRollNumber: "R-001", Amount: 100, DueDate: "2026-10-01"}),
			wantCode: http.StatusCreated,
		},
		{
			name: "Mark paid", method: http.MethodPost, path: "/api/admin/fees/" + pending.ID + "/pay", token: adminToken,
			wantCode: http.StatusOK,
		},
		{
			name: "Delete", method: http.MethodDelete, path: "/api/admin/fees/" + paid.ID, token: adminToken,
			wantCode: http.StatusNoContent,
		},
		{
			name: "Delete unknown", method: http.MethodDelete, path: "/api/admin/fees/" + paid.ID, token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "fee not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			switch tt.name {
			case "Create":
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var f fee.Fee
				if err := json.Unmarshal(rec.Body.Bytes(), &f); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				// snapshot taken from the student record
				if f.StudentName != "Amina" || f.Class != "5" || f.Status != fee.StatusPending {
					t.Errorf("failed! created fee = %+v", f)
				}
			case "Mark paid":
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var f fee.Fee
				if err := json.Unmarshal(rec.Body.Bytes(), &f); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if f.Status != fee.StatusPaid || !f.PaymentDate.Valid {
					t.Errorf("failed! paid fee = %+v", f)
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

func Test_feeApi_stats(t *testing.T) {
	app := setup(t)

	admin := testutil.CreateStaff(t, staffRepo, "Admin", "admin", "admin@test.cd", "", []string{staff.RoleAdmin}, true)
	adminToken := getToken(t, admin)

	now := time.Now().UTC()
	testutil.CreateFee(t, feeRepo, "R-001", 150, now.AddDate(0, 0, -30), fee.StatusPaid, now.AddDate(0, 0, -3))
	testutil.CreateFee(t, feeRepo, "R-002", 200, now.AddDate(0, 0, -30), fee.StatusOverdue)
	testutil.CreateFee(t, feeRepo, "R-003", 300, now.AddDate(0, 0, 30), fee.StatusPending)

	req, rec := newAuthRequest(http.MethodGet, "/api/admin/fees/stats", adminToken)
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var stats fee.Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v", err)
	}
	if stats.TotalCount != 3 || stats.PaidCount != 1 || stats.OverdueCount != 1 || stats.PendingCount != 1 {
		t.Errorf("failed! counts = %+v", stats)
	}
	if stats.TotalCollected != 150 {
		t.Errorf("failed! TotalCollected = %v; want 150", stats.TotalCollected)
	}
}
