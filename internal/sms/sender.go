// Package sms delivers one-time codes to phone numbers.
package sms

import (
	"context"
	"errors"
	"log"

	"github.com/personeltakip/backend/internal/config"
)

var ErrDeliveryFailed = errors.New("sms delivery failed")

// Sender delivers a text message to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// NewSender picks the provider named in cfg. Without provider credentials it
// falls back to LogSender so local setups still complete the login flow.
func NewSender(cfg *config.SMSConfig) Sender {
	switch cfg.Provider {
	case "netgsm":
		if cfg.UserCode == "" || cfg.Password == "" {
			log.Printf("[SMS] NetGSM credentials missing, falling back to log sender")
			return NewLogSender()
		}
		return NewNetGSMSender(cfg)
	default:
		return NewLogSender()
	}
}

// LogSender writes messages to the server log instead of sending them.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, phone, message string) error {
	log.Printf("[SMS] (dev) to=%s message=%q", phone, message)
	return nil
}
