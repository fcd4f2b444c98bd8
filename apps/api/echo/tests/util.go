package tests

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/elimu/apps/api/echo"
	"github.com/trezcool/elimu/core"
	"github.com/trezcool/elimu/core/admission"
	"github.com/trezcool/elimu/core/contact"
	"github.com/trezcool/elimu/core/fee"
	"github.com/trezcool/elimu/core/result"
	"github.com/trezcool/elimu/core/settings"
	"github.com/trezcool/elimu/core/staff"
	"github.com/trezcool/elimu/core/student"
	"github.com/trezcool/elimu/core/teacher"
	emailsvc "github.com/trezcool/elimu/services/email"
	dummydb "github.com/trezcool/elimu/storage/database/dummy"
	testutil "github.com/trezcool/elimu/tests"
)

var (
	conf *core.Config

	staffRepo     staff.Repository
	studentRepo   student.Repository
	teacherRepo   teacher.Repository
	admissionRepo admission.Repository
	feeRepo       fee.Repository
	resultRepo    result.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func setup(t *testing.T) Server {
	t.Helper()

	conf = testutil.NewConfig()

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	staffRepo = dummydb.NewStaffRepository(db)
	studentRepo = dummydb.NewStudentRepository(db)
	teacherRepo = dummydb.NewTeacherRepository(db)
	admissionRepo = dummydb.NewAdmissionRepository(db)
	feeRepo = dummydb.NewFeeRepository(db)
	resultRepo = dummydb.NewResultRepository(db)

	// set up services
	logger := testutil.Logger{}
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	studentSvc := student.NewService(studentRepo)

	core.ParseEmailTemplates(conf, logger)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	staff.InitValidators(validate, translator)

	// set up server
	return NewServer(
		ServerDeps{
			Conf:         conf,
			Logger:       logger,
			StaffSvc:     staff.NewService(staffRepo, mailSvc, conf),
			StudentSvc:   studentSvc,
			TeacherSvc:   teacher.NewService(teacherRepo),
			AdmissionSvc: admission.NewService(admissionRepo, mailSvc, conf, logger),
			FeeSvc:       fee.NewService(feeRepo, studentSvc),
			ResultSvc:    result.NewService(resultRepo),
			SettingsSvc:  settings.NewService(dummydb.NewSettingsRepository(db), conf),
			ContactSvc:   contact.NewService(mailSvc, conf),
			Validate:     validate,
			Translator:   translator,
		},
	)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// newUploadRequest builds a multipart upload of a single "file" part.
func newUploadRequest(t *testing.T, path, token, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}
	if _, err = fw.Write(content); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("newUploadRequest() failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func getToken(t *testing.T, acc staff.Staff) string {
	claims := GetStaffClaims(conf, acc)
	token, err := GenerateToken(conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
