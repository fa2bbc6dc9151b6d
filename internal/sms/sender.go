// Package sms delivers one-time codes to phones.
package sms

import (
	"context"
	"fmt"

	"skillconnect/internal/config"
	"skillconnect/internal/logger"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Sender delivers a text message to a phone number in E.164 form
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// NewSender picks the provider named in cfg
func NewSender(cfg *config.SMSConfig) (Sender, error) {
	switch cfg.Provider {
	case config.SMSProviderTwilio:
		return NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromPhone), nil
	case config.SMSProviderLog, "":
		return NewLogSender(), nil
	default:
		return nil, fmt.Errorf("unknown SMS provider %q", cfg.Provider)
	}
}

// messageAPI is the part of the Twilio REST client we call
type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type TwilioSender struct {
	api  messageAPI
	from string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{api: client.Api, from: from}
}

func (s *TwilioSender) Send(_ context.Context, to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.api.CreateMessage(params); err != nil {
		logger.Error("Failed to send SMS via Twilio",
			zap.String("to", maskPhone(to)),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send sms via twilio: %w", err)
	}

	logger.Debug("SMS sent", zap.String("to", maskPhone(to)), zap.String("provider", "twilio"))
	return nil
}

// LogSender writes messages to the log instead of sending them. Used in
// development, where no SMS provider is configured.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (LogSender) Send(_ context.Context, to, body string) error {
	logger.Info("SMS (not sent)",
		zap.String("to", to),
		zap.String("body", body),
		zap.String("event", "sms_logged"),
	)
	return nil
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	masked := make([]byte, len(phone))
	for i := range phone {
		if i < len(phone)-4 {
			masked[i] = '*'
		} else {
			masked[i] = phone[i]
		}
	}
	return string(masked)
}
