package service

import (
	"context"
	"fmt"
	"net/smtp"

	"medpractice-backend/config"

	"github.com/sirupsen/logrus"
)

// MailService delivers notification mails. Delivery is best-effort; callers
// treat failures as fire-and-forget and must not fail their own operation.
type MailService interface {
	Send(ctx context.Context, subject, body string) error
}

type smtpMailService struct {
	addr string
	from string
	to   string
	log  *logrus.Logger
}

func NewSMTPMailService(cfg config.MailConfig, log *logrus.Logger) MailService {
	return &smtpMailService{
		addr: cfg.Host + ":" + cfg.Port,
		from: cfg.From,
		to:   cfg.To,
		log:  log,
	}
}

func (s *smtpMailService) Send(ctx context.Context, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s",
		s.from, s.to, subject, body,
	))

	if err := smtp.SendMail(s.addr, nil, s.from, []string{s.to}, msg); err != nil {
		s.log.Warnf("Failed to send mail via %s: %+v", s.addr, err)
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

type noopMailService struct{}

// NewNoopMailService returns a mail service that silently drops messages.
// Used when no SMTP host is configured and in tests.
func NewNoopMailService() MailService {
	return &noopMailService{}
}

func (s *noopMailService) Send(ctx context.Context, subject, body string) error {
	return nil
}
