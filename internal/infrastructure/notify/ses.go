package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/userdir/user-service/internal/core/ports"
)

// sesAPI is the part of the SES client used here.
type sesAPI interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESNotifier sends notifications as plain text email through AWS SES.
type SESNotifier struct {
	client  sesAPI
	from    string
	timeout time.Duration
}

func NewSESNotifier(client sesAPI, from string, timeout time.Duration) *SESNotifier {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &SESNotifier{client: client, from: from, timeout: timeout}
}

// NewSESClient loads the default AWS credential chain for region.
func NewSESClient(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ses.NewFromConfig(cfg), nil
}

func (n *SESNotifier) Send(ctx context.Context, msg ports.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	input := &ses.SendEmailInput{
		Source:      aws.String(n.from),
		Destination: &types.Destination{ToAddresses: msg.To},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(msg.Message),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	return nil
}
