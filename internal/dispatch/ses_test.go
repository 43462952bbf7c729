package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/ignite/leadmailer/internal/config"
	"github.com/ignite/leadmailer/internal/pkg/logger"
)

type spySender struct {
	calls     int
	lastInput *sesv2.SendEmailInput
	messageID string
	err       error
}

func (s *spySender) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	s.calls++
	s.lastInput = params
	if s.err != nil {
		return nil, s.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String(s.messageID)}, nil
}

func testMessage() Message {
	return Message{
		To:          "ada@example.com",
		FromAddress: "info@acme.com",
		FromName:    "Acme Team",
		Subject:     "Confirmation from Acme",
		HTMLBody:    "<p>Welcome</p>",
	}
}

func testSESConfig() appconfig.SESConfig {
	return appconfig.SESConfig{Region: "us-east-1", TimeoutSeconds: 5}
}

func TestSendUnconfiguredIsSkipped(t *testing.T) {
	g := &SESGateway{cfg: testSESConfig(), log: logger.New("dispatch")}

	outcome, err := g.Send(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if outcome.Status != StatusSkipped {
		t.Errorf("status = %q, want %q", outcome.Status, StatusSkipped)
	}
	if outcome.MessageID != "" {
		t.Errorf("skipped outcome has message id %q", outcome.MessageID)
	}
}

func TestSendDeliversThroughProvider(t *testing.T) {
	spy := &spySender{messageID: "msg-123"}
	g := &SESGateway{client: spy, cfg: testSESConfig(), log: logger.New("dispatch")}

	outcome, err := g.Send(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if outcome.Status != StatusSent {
		t.Errorf("status = %q, want %q", outcome.Status, StatusSent)
	}
	if outcome.MessageID != "msg-123" {
		t.Errorf("message id = %q", outcome.MessageID)
	}
	if spy.calls != 1 {
		t.Fatalf("provider called %d times, want 1", spy.calls)
	}

	in := spy.lastInput
	if got := aws.ToString(in.FromEmailAddress); got != "Acme Team <info@acme.com>" {
		t.Errorf("from = %q", got)
	}
	if len(in.Destination.ToAddresses) != 1 || in.Destination.ToAddresses[0] != "ada@example.com" {
		t.Errorf("to = %v", in.Destination.ToAddresses)
	}
	if got := aws.ToString(in.Content.Simple.Subject.Data); got != "Confirmation from Acme" {
		t.Errorf("subject = %q", got)
	}
	if got := aws.ToString(in.Content.Simple.Body.Html.Data); got != "<p>Welcome</p>" {
		t.Errorf("html body = %q", got)
	}
	if got := aws.ToString(in.Content.Simple.Body.Text.Data); got != textAlternative {
		t.Errorf("text body = %q", got)
	}
}

func TestSendProviderErrorPropagates(t *testing.T) {
	spy := &spySender{err: errors.New("rate exceeded")}
	g := &SESGateway{client: spy, cfg: testSESConfig(), log: logger.New("dispatch")}

	_, err := g.Send(context.Background(), testMessage())
	if err == nil {
		t.Fatal("Send() expected provider error")
	}
	if !strings.Contains(err.Error(), "rate exceeded") {
		t.Errorf("error = %v", err)
	}
	if strings.Contains(err.Error(), "ada@example.com") {
		t.Errorf("error leaks full recipient address: %v", err)
	}
	if spy.calls != 1 {
		t.Errorf("provider called %d times, want 1 (no retry)", spy.calls)
	}
}
