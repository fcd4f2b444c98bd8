package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	echoapi "github.com/trezcool/elimu/apps/api/echo"
	"github.com/trezcool/elimu/core/admission"
	"github.com/trezcool/elimu/core/contact"
	"github.com/trezcool/elimu/core/settings"
	emailsvc "github.com/trezcool/elimu/services/email"
)

func Test_publicApi_siteSettings(t *testing.T) {
	app := setup(t)

	// the first read seeds the singleton with defaults; the public payload
	// never carries the record version
	want := settings.Defaults(conf.AppName).Public()

	tt := httpTest{
		name: "Get site settings", method: http.MethodGet, path: "/api/site/settings",
		wantCode: http.StatusOK, wantData: marchallObj(t, want),
	}
	req, rec := newRequest(tt.method, tt.path)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)

	if strings.Contains(rec.Body.String(), `"version"`) {
		t.Errorf("public settings leaked the version: %s", rec.Body.String())
	}
}

func Test_publicApi_contactMessage(t *testing.T) {
	app := setup(t)

	reqMsg := "this field is required"
	tests := []httpTest{
		{
			name: "required fields", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"name": reqMsg, "email": reqMsg, "subject": reqMsg, "message": reqMsg,
			}),
			extra: false,
		},
		{
			name: "invalid email", wantCode: http.StatusBadRequest,
			body: marchallObj(t, contact.Message{Name: "Jean", Email: "lol", Subject: "Hi", Message: "Hello"}),
			wantData: marchallObj(t, map[string]string{
				"email": "email must be a valid email address",
			}),
			extra: false,
		},
		{
			name: "message sent", wantCode: http.StatusOK,
			body:     marchallObj(t, contact.Message{Name: "Jean", Email: "jean@test.cd", Subject: "Visit", Message: "May we visit?"}),
			wantData: marchallObj(t, echoapi.SuccessResponse{Success: "Thank you for reaching out. We will get back to you shortly."}),
			extra:    true,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/contact"

		t.Run(tt.name, func(t *testing.T) {
			emailsvc.SentMessages = nil // reset

			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if emailSent := tt.extra.(bool); emailSent {
				if len(emailsvc.SentMessages) != 1 {
					t.Fatalf("failed! len(SentMessages) = %d; want 1", len(emailsvc.SentMessages))
				}
				msg := emailsvc.SentMessages[0]
				if msg.To[0] != conf.ContactEmail {
					t.Errorf("failed! To = %v; want %v", msg.To[0], conf.ContactEmail)
				}
				if msg.Subject != "Contact form: Visit" {
					t.Errorf("failed! Subject = %q", msg.Subject)
				}
			} else if len(emailsvc.SentMessages) > 0 {
				t.Errorf("failed! len(SentMessages) = %d; want 0", len(emailsvc.SentMessages))
			}
		})
	}
}

func Test_publicApi_apply(t *testing.T) {
	app := setup(t)

	valid := admission.NewAdmission{
		StudentName: "Junior Kalala",
		DateOfBirth: "2019-05-20",
		Grade:       "1",
		ParentName:  "Papa Kalala",
		ParentEmail: "papa@test.cd",
		ParentPhone: "+243810000000",
	}

	tests := []httpTest{
		{
			name: "bad date of birth", wantCode: http.StatusBadRequest,
			body: marchallObj(t, admission.NewAdmission{
				StudentName: "Junior Kalala", DateOfBirth: "20-05-2019", Grade: "1",
				ParentName: "Papa Kalala", ParentEmail: "papa@test.cd", ParentPhone: "+243810000000",
			}),
			wantData: marchallObj(t, map[string]string{
				"date_of_birth": "date_of_birth does not match the 2006-01-02 format",
			}),
		},
		{name: "application submitted", wantCode: http.StatusCreated, body: marchallObj(t, valid)},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/api/admissions/apply"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var adm admission.Admission
				if err := json.Unmarshal(rec.Body.Bytes(), &adm); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if adm.ID == "" || adm.Status != admission.StatusPending {
					t.Errorf("failed! submitted application = %+v", adm)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
