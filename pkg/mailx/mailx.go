package mailx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Abraxas-365/hiretrack/pkg/logx"
	"gopkg.in/gomail.v2"
)

// ErrDisabled is returned by a Sender built without SMTP configuration
var ErrDisabled = errors.New("mailx: outbound mail is not configured")

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (m Message) validate() error {
	if strings.TrimSpace(m.To) == "" {
		return errors.New("mailx: recipient is required")
	}
	if strings.TrimSpace(m.Subject) == "" {
		return errors.New("mailx: subject is required")
	}
	return nil
}

// Sender delivers a single message
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Company  string
}

// FromAddress returns the configured sender, or "<Company> <user>"
func (c Config) FromAddress() string {
	if c.From != "" {
		return c.From
	}
	if c.Company != "" {
		return fmt.Sprintf("%s <%s>", c.Company, c.User)
	}
	return c.User
}

func (c Config) configured() bool {
	return c.Host != "" && c.User != ""
}

// New builds the process-wide sender. A missing host or user yields a
// DisabledSender so the server still starts without mail.
func New(cfg Config) Sender {
	if !cfg.configured() {
		logx.Warn("SMTP is not configured, outbound mail is disabled")
		return DisabledSender{}
	}
	return NewSMTPSender(cfg)
}

// ============================================================================
// SMTP
// ============================================================================

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	mu     sync.Mutex
	closed bool
}

func NewSMTPSender(cfg Config) *SMTPSender {
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	d := gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Password)
	d.SSL = port == 465

	return &SMTPSender{
		dialer: d,
		from:   cfg.FromAddress(),
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return errors.New("mailx: sender is closed")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// Close stops further sends; each Send dials its own connection
func (s *SMTPSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ============================================================================
// Disabled
// ============================================================================

type DisabledSender struct{}

func (DisabledSender) Send(ctx context.Context, msg Message) error {
	logx.Warnf("Mail to %s dropped: %v", msg.To, ErrDisabled)
	return ErrDisabled
}

func (DisabledSender) Close() error { return nil }
