package emailsvc

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/trezcool/elimu/core"
	testutil "github.com/trezcool/elimu/tests"
)

func TestConsoleServiceMock_sendMessage(t *testing.T) {
	conf := testutil.NewConfig()
	core.ParseEmailTemplates(conf, testutil.Logger{})
	svc := NewConsoleServiceMock(conf)

	mu.Lock()
	SentMessages = nil
	mu.Unlock()

	svc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: "Jane", Address: "jane@test.cd"}},
		Subject: "Hello",
		BodyStr: "plain content",
	})
	if len(SentMessages) != 1 {
		t.Fatalf("len(SentMessages) = %d, want 1", len(SentMessages))
	}
	if !strings.Contains(SentMessages[0].TextContent, "plain content") {
		t.Errorf("TextContent = %q", SentMessages[0].TextContent)
	}
}

func TestConsoleServiceMock_renderFailureSkipsMessage(t *testing.T) {
	conf := testutil.NewConfig()
	core.ParseEmailTemplates(conf, testutil.Logger{})
	svc := NewConsoleServiceMock(conf)

	mu.Lock()
	SentMessages = nil
	mu.Unlock()

	// templates run with missingkey=error in test mode; rendering fails
	// and the message is dropped without taking the process down
	svc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: "Jane", Address: "jane@test.cd"}},
		Subject:      "Password reset",
		TemplateName: "password-reset",
		TemplateData: struct{ Unrelated string }{"lol"},
	})
	if len(SentMessages) != 0 {
		t.Errorf("len(SentMessages) = %d, want 0", len(SentMessages))
	}
}
