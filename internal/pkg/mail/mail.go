// Package mail sends contact-form email over SMTP.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// VerifyTimeout bounds the SMTP handshake used by Verify and SendContact.
const VerifyTimeout = 15 * time.Second

// Sentinel errors returned to callers. Raw transport errors are wrapped so
// handlers can map them to user-facing categories without leaking details.
var (
	ErrNotConfigured = errors.New("mail: smtp transport is not configured")
	ErrAuth          = errors.New("mail: smtp authentication failed")
	ErrConnection    = errors.New("mail: could not connect to smtp server")
	ErrBadAddress    = errors.New("mail: recipient address rejected")
)

// Config holds SMTP transport settings (matches Config.SMTP).
type Config struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	User      string `json:"user"`
	Pass      string `json:"pass"`
	From      string `json:"from"`
	Recipient string `json:"recipient"`
}

// Message is a single email to send.
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender sends emails via SMTP. A Sender built from incomplete configuration
// stays usable; every send just fails with ErrNotConfigured.
type Sender struct {
	cfg Config
}

func New(cfg Config) *Sender {
	return &Sender{cfg: cfg}
}

// IsConfigured reports whether every required transport setting is present.
func (s *Sender) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.User != "" && s.cfg.Pass != "" && s.cfg.Recipient != ""
}

// ConfigStatus reports which settings are present, without exposing values.
func (s *Sender) ConfigStatus() map[string]bool {
	return map[string]bool{
		"host":      s.cfg.Host != "",
		"port":      s.cfg.Port != 0,
		"user":      s.cfg.User != "",
		"pass":      s.cfg.Pass != "",
		"from":      s.cfg.From != "",
		"recipient": s.cfg.Recipient != "",
	}
}

func (s *Sender) addr() string {
	port := s.cfg.Port
	if port == 0 {
		port = 587
	}
	return fmt.Sprintf("%s:%d", s.cfg.Host, port)
}

func (s *Sender) from() string {
	if s.cfg.From != "" {
		return s.cfg.From
	}
	return s.cfg.User
}

// Verify dials the SMTP server and completes a handshake including AUTH,
// bounded by VerifyTimeout. It sends nothing.
func (s *Sender) Verify(ctx context.Context) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, VerifyTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", s.addr())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(nil); err != nil {
			return fmt.Errorf("%w: %v", ErrConnection, err)
		}
	}

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("%w: %v", ErrAuth, err)
	}

	return client.Quit()
}

// Send dispatches a single email over SMTP.
func (s *Sender) Send(msg Message) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}

	from := s.from()

	var body bytes.Buffer
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString(fmt.Sprintf("From: %s\r\n", from))
	body.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(msg.To, ", ")))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	body.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	if msg.ReplyTo != "" {
		body.WriteString(fmt.Sprintf("Reply-To: %s\r\n", msg.ReplyTo))
	}
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	if err := smtp.SendMail(s.addr(), auth, from, msg.To, body.Bytes()); err != nil {
		return classify(err)
	}
	return nil
}

// classify maps raw SMTP failures onto the package sentinels.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "535") || strings.Contains(msg, "auth"):
		return fmt.Errorf("%w: %v", ErrAuth, err)
	case strings.Contains(msg, "550") || strings.Contains(msg, "553") || strings.Contains(msg, "recipient") || strings.Contains(msg, "address"):
		return fmt.Errorf("%w: %v", ErrBadAddress, err)
	default:
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
}

// ContactData is a submitted contact-form entry.
type ContactData struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// SendContact verifies the transport, then sends the internal notification
// followed by the auto-reply to the submitter. Both sends must succeed.
func (s *Sender) SendContact(ctx context.Context, data ContactData) error {
	if !s.IsConfigured() {
		return ErrNotConfigured
	}
	if err := s.Verify(ctx); err != nil {
		return err
	}

	notifyHTML, err := renderTemplate(contactNotifyTpl, data)
	if err != nil {
		return err
	}
	if err := s.Send(Message{
		To:      []string{s.cfg.Recipient},
		ReplyTo: data.Email,
		Subject: fmt.Sprintf("New contact form submission: %s", data.Subject),
		HTML:    notifyHTML,
	}); err != nil {
		return err
	}

	replyHTML, err := renderTemplate(contactReplyTpl, data)
	if err != nil {
		return err
	}
	return s.Send(Message{
		To:      []string{data.Email},
		Subject: "We received your message",
		HTML:    replyHTML,
	})
}

const contactNotifyTpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="background-color:#fff;margin:0 auto;font-family:ui-sans-serif,system-ui,-apple-system,BlinkMacSystemFont,Segoe UI,Roboto,Helvetica Neue,Arial,Noto Sans,sans-serif;padding:.5rem">
  <table align="center" width="100%" role="presentation" cellspacing="0" cellpadding="0" border="0" style="max-width:100%;border-width:1px;border-style:solid;border-radius:.25rem;margin:40px auto;padding:20px;width:550px;border-color:rgb(14,165,233)">
    <tbody>
      <tr><td>
        <h1 style="color:#000;font-size:18px;font-weight:400;text-align:center;margin:30px 0">New contact form submission</h1>
        <table align="center" width="100%" role="presentation" border="0" cellpadding="0" cellspacing="0" style="background-color:rgb(243,244,246);border-radius:.75rem;padding:0 1rem">
          <tbody><tr><td><p style="font-size:12px;line-height:24px;margin:16px 0;color:rgb(51,51,51)">Name: {{.Name}}<br />Email: {{.Email}}<br />{{if .Phone}}Phone: {{.Phone}}<br />{{end}}Subject: {{.Subject}}</p></td></tr></tbody>
        </table>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#000">Message:</p>
        <table align="center" width="100%" role="presentation" border="0" cellpadding="0" cellspacing="0" style="background-color:rgb(243,244,246);border-radius:.75rem;padding:0 1rem">
          <tbody><tr><td><p style="font-size:12px;line-height:24px;margin:16px 0;color:rgb(51,51,51)">{{.Message}}</p></td></tr></tbody>
        </table>
        <hr style="width:100%;border:none;border-top:1px solid #eaeaea;margin:26px 0" />
        <p style="font-size:10px;line-height:24px;margin:16px 0;text-align:center;color:rgb(156,163,175)">This message was sent automatically from the website contact form.<br />&copy;{{year}}</p>
      </td></tr>
    </tbody>
  </table>
</body>
</html>`

const contactReplyTpl = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
</head>
<body style="background-color:#fff;margin:0 auto;font-family:ui-sans-serif,system-ui,-apple-system,BlinkMacSystemFont,Segoe UI,Roboto,Helvetica Neue,Arial,Noto Sans,sans-serif;padding:.5rem">
  <table align="center" width="100%" role="presentation" cellspacing="0" cellpadding="0" border="0" style="max-width:100%;border-width:1px;border-style:solid;border-radius:.25rem;margin:40px auto;padding:20px;width:550px;border-color:rgb(14,165,233)">
    <tbody>
      <tr><td>
        <h1 style="color:#000;font-size:18px;font-weight:400;text-align:center;margin:30px 0">Thank you for reaching out, {{.Name}}</h1>
        <p style="font-size:14px;line-height:24px;margin:16px 0;color:#000">We received your message and will get back to you as soon as possible. For reference, here is a copy of what you sent:</p>
        <table align="center" width="100%" role="presentation" border="0" cellpadding="0" cellspacing="0" style="background-color:rgb(243,244,246);border-radius:.75rem;padding:0 1rem">
          <tbody><tr><td><p style="font-size:12px;line-height:24px;margin:16px 0;color:rgb(51,51,51)">Subject: {{.Subject}}<br /><br />{{.Message}}</p></td></tr></tbody>
        </table>
        <hr style="width:100%;border:none;border-top:1px solid #eaeaea;margin:26px 0" />
        <p style="font-size:10px;line-height:24px;margin:16px 0;text-align:center;color:rgb(156,163,175)">This is an automated reply, please do not respond to this email.<br />&copy;{{year}}</p>
      </td></tr>
    </tbody>
  </table>
</body>
</html>`

func renderTemplate(tpl string, data interface{}) (string, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},
	}).Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
