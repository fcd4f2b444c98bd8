package core

import (
	"net/mail"
	"strings"
	"testing"

	appfs "github.com/trezcool/elimu/fs"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...interface{}) {}
func (noopLogger) Info(msg string, args ...interface{})  {}
func (noopLogger) Warn(msg string, args ...interface{})  {}
func (noopLogger) Error(msg string, args ...interface{}) {}
func (noopLogger) Fatal(msg string, args ...interface{}) {}

func TestParseEmailTemplates(t *testing.T) {
	// the shared base layouts must be embedded for any template to parse
	for _, base := range []string{"_base.txt", "_base.gohtml"} {
		if _, err := appfs.FS.ReadFile(tmplRoot + "/" + base); err != nil {
			t.Fatalf("base template %s not embedded: %v", base, err)
		}
	}

	conf := &Config{TestMode: true, SiteBaseURL: "http://localhost:3000"}
	ParseEmailTemplates(conf, noopLogger{})

	entries, err := appfs.FS.ReadDir(tmplRoot)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	for _, entry := range entries {
		fname := entry.Name()
		if strings.HasPrefix(fname, "_") {
			continue
		}
		ext := fname[strings.LastIndex(fname, "."):]
		name := fname[:strings.LastIndex(fname, ".")]
		cache, ok := templates[name]
		if !ok {
			t.Errorf("template %s not loaded", name)
			continue
		}
		if _, ok = cache[ext]; !ok {
			t.Errorf("template %s missing %s variant", name, ext)
		}
	}
}

func TestEmailMessage_Render(t *testing.T) {
	conf := &Config{TestMode: true, SiteBaseURL: "http://localhost:3000"}
	ParseEmailTemplates(conf, noopLogger{})

	msg := EmailMessage{
		To:           []mail.Address{{Name: "Jane", Address: "jane@test.cd"}},
		Subject:      "Password reset",
		TemplateName: "password-reset",
		TemplateData: struct {
			Name  string
			UID   string
			Token string
		}{"Jane", "TUM", "tok-en"},
	}
	if err := msg.Render(conf); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	if !msg.HasContent() {
		t.Fatal("Render() produced no content")
	}
	if !strings.Contains(msg.TextContent, "/password-reset/TUM/tok-en") {
		t.Errorf("text content missing the reset link:\n%s", msg.TextContent)
	}
	if !strings.Contains(msg.HTMLContent, "/password-reset/TUM/tok-en") {
		t.Errorf("html content missing the reset link:\n%s", msg.HTMLContent)
	}
}
