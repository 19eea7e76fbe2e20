package mailer

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
)

const reminderSubject = "Payment Reminder - Action Required"

// Config holds the SMTP account used for outgoing reminders.
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromName    string
	FromAddress string
	Timeout     time.Duration
}

// sender is the subset of *mail.Client used to deliver messages.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPNotifier delivers payment reminders by email.
type SMTPNotifier struct {
	client   sender
	fromName string
	fromAddr string
	log      zerolog.Logger
}

// NewSMTPNotifier builds a go-mail client for cfg. The connection is opened
// per message, so a dead SMTP server only fails the reminders sent while it
// is down.
func NewSMTPNotifier(cfg Config, log zerolog.Logger) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, errors.New("mailer: smtp host is required")
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mailer: new client: %w", err)
	}

	from := cfg.FromAddress
	if from == "" {
		from = cfg.Username
	}
	return newSMTPNotifier(client, cfg.FromName, from, log), nil
}

func newSMTPNotifier(client sender, fromName, fromAddr string, log zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{client: client, fromName: fromName, fromAddr: fromAddr, log: log}
}

// SendReminder renders and sends the overdue-payment email for c.
func (n *SMTPNotifier) SendReminder(ctx context.Context, c *domain.Client) error {
	if c.Email == "" {
		return fmt.Errorf("send reminder to %s: client has no email address", c.ID)
	}

	msg, err := n.buildReminder(c)
	if err != nil {
		return err
	}

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send reminder to %s: %w", c.Email, err)
	}

	n.log.Debug().Str("client_id", c.ID).Str("to", c.Email).Msg("reminder email accepted")
	return nil
}

func (n *SMTPNotifier) buildReminder(c *domain.Client) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if n.fromName != "" {
		if err := msg.FromFormat(n.fromName, n.fromAddr); err != nil {
			return nil, fmt.Errorf("set From address: %w", err)
		}
	} else if err := msg.From(n.fromAddr); err != nil {
		return nil, fmt.Errorf("set From address: %w", err)
	}
	if err := msg.To(c.Email); err != nil {
		return nil, fmt.Errorf("set To address: %w", err)
	}
	msg.Subject(reminderSubject)

	data := reminderData{
		Name:     c.Name,
		Deadline: c.Deadline,
		Contact:  c.Contact,
		ReplyTo:  n.fromAddr,
	}
	if err := msg.SetBodyHTMLTemplate(reminderTemplate, data); err != nil {
		return nil, fmt.Errorf("render reminder: %w", err)
	}
	return msg, nil
}

type reminderData struct {
	Name     string
	Deadline string
	Contact  string
	ReplyTo  string
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`<h2>Payment Reminder</h2>
<p>Dear {{.Name}},</p>
<p>This is a reminder that your payment is currently marked as unpaid and has passed the deadline.</p>
<p><strong>Client Details:</strong></p>
<ul>
  <li>Name: {{.Name}}</li>
  <li>Deadline: {{.Deadline}}</li>
  <li>Contact: {{.Contact}}</li>
</ul>
<p>Please complete your payment as soon as possible. If you have already made the payment,
kindly inform us with the payment details.</p>
<p>For any queries, you can reach us at:</p>
<p>Email: {{.ReplyTo}}</p>
<p>Thank you for your prompt attention to this matter.</p>
`))
