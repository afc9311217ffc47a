package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config параметры SMTP
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	ShopEmail string
}

// Mailer отправляет email уведомления через SMTP
// Все отправки best-effort: вызывающая сторона не должна блокировать
// основную операцию из-за недоставленного письма
type Mailer struct {
	dialer    *gomail.Dialer
	from      string
	shopEmail string
	log       Logger
}

// New создает новый Mailer
func New(cfg Config, log Logger) *Mailer {
	return &Mailer{
		dialer:    gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:      cfg.From,
		shopEmail: cfg.ShopEmail,
		log:       log,
	}
}

// Send отправляет письмо одному получателю
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("mailer: send failed: to=%s, subject=%q, err=%v", to, subject, err)
		return fmt.Errorf("mailer: send: %w", err)
	}

	m.log.Info("mailer: sent: to=%s, subject=%q", to, subject)
	return nil
}

// NotifyShop отправляет уведомление на адрес магазина
func (m *Mailer) NotifyShop(subject, body string) error {
	if m.shopEmail == "" {
		return nil
	}
	return m.Send(m.shopEmail, subject, body)
}

// Noop заглушка для выключенных уведомлений
type Noop struct{}

func (Noop) Send(to, subject, body string) error   { return nil }
func (Noop) NotifyShop(subject, body string) error { return nil }
