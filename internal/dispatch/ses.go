package dispatch

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	appconfig "github.com/ignite/leadmailer/internal/config"
	"github.com/ignite/leadmailer/internal/pkg/logger"
)

// textAlternative is the plain-text part attached to every HTML send.
const textAlternative = "This email requires an HTML capable client."

// emailSender is the slice of the SES v2 client the gateway uses.
type emailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESGateway sends messages through the AWS SES v2 API. Sends are not
// retried here: a retried send can double-deliver, and failed sends stay in
// draft status for the caller to re-dispatch deliberately.
type SESGateway struct {
	client emailSender
	cfg    appconfig.SESConfig
	log    *logger.Logger
}

// NewSESGateway creates a gateway from config. When SES is not configured no
// AWS client is built and every Send reports a skipped outcome.
func NewSESGateway(ctx context.Context, cfg appconfig.SESConfig) (*SESGateway, error) {
	g := &SESGateway{
		cfg: cfg,
		log: logger.New("dispatch"),
	}

	if !cfg.Configured() {
		g.log.Info("ses not configured, sends will be skipped")
		return g, nil
	}

	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	g.client = sesv2.NewFromConfig(awsCfg)
	g.log.Info("ses gateway ready", "region", cfg.Region)
	return g, nil
}

// Send delivers a single message. SES errors are returned to the caller; an
// unconfigured gateway returns a skipped outcome and no error.
func (g *SESGateway) Send(ctx context.Context, msg Message) (*Outcome, error) {
	if g.client == nil {
		g.log.Warn("send skipped, ses not configured", "to", msg.To)
		return &Outcome{Status: StatusSkipped, Detail: "delivery provider not configured"}, nil
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", msg.FromName, msg.FromAddress)),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")},
					Text: &types.Content{Data: aws.String(textAlternative), Charset: aws.String("UTF-8")},
				},
			},
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout())
	defer cancel()

	result, err := g.client.SendEmail(callCtx, input)
	if err != nil {
		return nil, fmt.Errorf("sending email to %s: %w", logger.RedactEmail(msg.To), err)
	}

	outcome := &Outcome{Status: StatusSent}
	if result.MessageId != nil {
		outcome.MessageID = *result.MessageId
	}

	g.log.Info("email sent", "to", msg.To, "message_id", outcome.MessageID)
	return outcome, nil
}
