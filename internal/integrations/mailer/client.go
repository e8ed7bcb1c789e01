package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// Config параметры SMTP клиента
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// Внутренний получатель копии каждого уведомления
	AdminRecipient string
}

// Client best-effort почтовый клиент уведомлений
// Ошибки отправки логируются и никогда не попадают в критический путь
// сохранения бронирования
type Client struct {
	cfg  Config
	smtp *mail.Client
	log  Logger
}

// NewClient создает SMTP клиент уведомлений
func NewClient(cfg Config, log Logger) (*Client, error) {
	smtp, err := mail.NewClient(
		cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClientInit, err)
	}

	return &Client{cfg: cfg, smtp: smtp, log: log}, nil
}

// SendBookingNotification отправляет уведомление клиенту и внутреннему
// получателю. Каждая отправка независима: неудача одной не мешает другой.
// Возвращает флаги доставки; ошибка возвращается только если не дошло
// ни одно письмо
func (c *Client) SendBookingNotification(ctx context.Context, n Notification) (Result, error) {
	result := Result{}

	if err := c.send(ctx, n.CustomerEmail, customerSubject(n), customerBody(n)); err != nil {
		c.log.Error("Mailer: customer notification failed for %s: %v", n.ReferenceNumber, err)
	} else {
		result.CustomerSent = true
	}

	if err := c.send(ctx, c.cfg.AdminRecipient, adminSubject(n), adminBody(n)); err != nil {
		c.log.Error("Mailer: admin notification failed for %s: %v", n.ReferenceNumber, err)
	} else {
		result.AdminSent = true
	}

	if !result.CustomerSent && !result.AdminSent {
		return result, fmt.Errorf("%w: reference=%s", ErrSendFailed, n.ReferenceNumber)
	}

	return result, nil
}

func (c *Client) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(c.cfg.From); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return c.smtp.DialAndSendWithContext(ctx, msg)
}
