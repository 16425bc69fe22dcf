package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/personeltakip/backend/internal/config"
)

// NetGSMSender talks to the NetGSM HTTP GET API. The provider answers with a
// plain-text body whose leading code tells success ("00 <jobid>") from failure.
type NetGSMSender struct {
	client        *http.Client
	baseURL       string
	userCode      string
	password      string
	msgHeader     string
	successPrefix string
}

func NewNetGSMSender(cfg *config.SMSConfig) *NetGSMSender {
	return &NetGSMSender{
		client:        &http.Client{Timeout: cfg.Timeout},
		baseURL:       cfg.BaseURL,
		userCode:      cfg.UserCode,
		password:      cfg.Password,
		msgHeader:     cfg.MsgHeader,
		successPrefix: cfg.SuccessPrefix,
	}
}

func (s *NetGSMSender) Send(ctx context.Context, phone, message string) error {
	q := url.Values{}
	q.Set("usercode", s.userCode)
	q.Set("password", s.password)
	q.Set("gsmno", phone)
	q.Set("message", message)
	q.Set("msgheader", s.msgHeader)
	q.Set("dil", "TR")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrDeliveryFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: http status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	result := strings.TrimSpace(string(body))
	if !strings.HasPrefix(result, s.successPrefix) {
		return fmt.Errorf("%w: provider response %q", ErrDeliveryFailed, result)
	}
	return nil
}
