package notifications

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"guideomra/pkg/logger"
)

// Email is one rendered message
type Email struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers rendered emails
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// SMTPConfig holds SMTP configuration
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	UseTLS    bool
	Timeout   time.Duration
}

func (c *SMTPConfig) Validate() error {
	if c == nil {
		return errors.New("SMTP config is nil")
	}
	if c.Host == "" {
		return errors.New("SMTP host is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("SMTP port must be between 1 and 65535")
	}
	if c.FromEmail == "" {
		return errors.New("from email is required")
	}
	return nil
}

// SMTPMailer sends over SMTP, upgrading with STARTTLS when UseTLS is set
type SMTPMailer struct {
	config *SMTPConfig
}

func NewSMTPMailer(config *SMTPConfig) (*SMTPMailer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SMTP configuration: %w", err)
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &SMTPMailer{config: config}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, email *Email) error {
	message := m.buildMessage(email)
	addr := net.JoinHostPort(m.config.Host, strconv.Itoa(m.config.Port))

	dialer := net.Dialer{Timeout: m.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(m.config.Timeout))
	}

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open SMTP session: %w", err)
	}
	defer client.Quit()

	if m.config.UseTLS {
		if err := client.StartTLS(&tls.Config{ServerName: m.config.Host}); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if m.config.Username != "" {
		auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(m.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(email.To); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

// buildMessage creates a multipart/alternative message, text part first
func (m *SMTPMailer) buildMessage(email *Email) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	to := email.To
	if email.ToName != "" {
		to = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", email.ToName), email.To)
	}

	var buf bytes.Buffer
	headers := [][2]string{
		{"From", fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", m.config.FromName), m.config.FromEmail)},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("utf-8", email.Subject)},
		{"MIME-Version", "1.0"},
		{"Date", time.Now().Format(time.RFC1123Z)},
		{"Content-Type", "multipart/alternative; boundary=" + boundary},
	}
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h[0], h[1])
	}
	buf.WriteString("\r\n")

	if email.TextBody != "" {
		fmt.Fprintf(&buf, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, email.TextBody)
	}
	if email.HTMLBody != "" {
		fmt.Fprintf(&buf, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, email.HTMLBody)
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes()
}

// LogMailer only logs; used when SMTP is not configured
type LogMailer struct {
	log *logger.Logger
}

func NewLogMailer() *LogMailer {
	return &LogMailer{log: logger.GetDefault()}
}

func (m *LogMailer) Send(ctx context.Context, email *Email) error {
	m.log.InfoContext(ctx, "Email not sent (SMTP disabled)",
		slog.String("to", email.To),
		slog.String("subject", email.Subject),
	)
	return nil
}
