package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender delivers transactional mail. Implementations must not block the
// caller on delivery retries.
type Sender interface {
	SendVerification(to, name, verifyURL string) error
}

// SMTPSender sends mail through an SMTP relay.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates a sender for the given SMTP relay.
func NewSMTPSender(host string, port int, user, pass, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}
}

// SendVerification sends the email verification message with the signed
// verification link.
func (s *SMTPSender) SendVerification(to, name, verifyURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Email Verification")
	m.SetBody("text/html", verificationBody(name, verifyURL))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}

func verificationBody(name, verifyURL string) string {
	return fmt.Sprintf(
		`<p>%s님, 환영합니다!</p>
<p>아래 링크를 눌러 이메일 인증을 완료해 주세요. 링크는 1시간 동안 유효합니다.</p>
<p><a href="%s">이메일 인증하기</a></p>`,
		name, verifyURL,
	)
}

// LogSender logs verification links instead of sending mail. Used when SMTP
// is not configured, typically in local development.
type LogSender struct {
	log *zap.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

// SendVerification logs the verification link.
func (s *LogSender) SendVerification(to, name, verifyURL string) error {
	s.log.Info("verification mail (smtp not configured)",
		zap.String("to", to),
		zap.String("name", name),
		zap.String("url", verifyURL),
	)
	return nil
}
