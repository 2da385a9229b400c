// Package sns delivers verification codes over SMS, the alternate OTP
// channel next to mail.
package sns

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/skyfuel/auth-api/internal/config"
)

// SMSSender sends a single text message to a phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type sender struct {
	client *sns.Client
}

// NewSender wires an SMSSender backed by AWS SNS in cfg.SNSRegion. The
// caller treats a construction error as "no SMS channel" and serves the
// mail channel only.
func NewSender(cfg *config.Config) (SMSSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &sender{client: sns.NewFromConfig(awsCfg)}, nil
}

// SendSMS publishes message directly to the phone number. Delivery blocks
// until SNS accepts the publish; the OTP flow surfaces a failure instead of
// handing out a pending id nobody can complete.
func (s *sender) SendSMS(ctx context.Context, to, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &to,
		Message:     &message,
	})
	return err
}
