package services

import (
	"context"
	"fmt"
	"log"

	"pjhweb-backend/config"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"
)

// Notifier delivers messages to customers and to the business inbox.
type Notifier interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendSMS(ctx context.Context, to, body string) error
}

// Notifications sends email over SMTP and SMS through Twilio. A channel
// whose settings are missing returns ErrNotConfigured.
type Notifications struct {
	dialer  *gomail.Dialer
	from    string
	client  *twilio.RestClient
	smsFrom string
}

func NewNotifications(cfg config.Config) *Notifications {
	n := &Notifications{from: cfg.SMTPFrom, smsFrom: cfg.TwilioPhoneNumber}

	if cfg.SMTPHost != "" {
		n.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
		if n.from == "" {
			n.from = cfg.SMTPUser
		}
	} else {
		log.Println("SMTP_HOST not set: email notifications disabled")
	}

	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioPhoneNumber != "" {
		n.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	} else {
		log.Println("Twilio credentials not set: SMS notifications disabled")
	}
	return n
}

func (n *Notifications) SendEmail(ctx context.Context, to, subject, body string) error {
	if n.dialer == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	log.Printf("Email sent to %s: %s", to, subject)
	return nil
}

func (n *Notifications) SendSMS(ctx context.Context, to, body string) error {
	if n.client == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.smsFrom)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send sms to %s: %w", to, err)
	}
	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", to, *resp.Sid)
	}
	return nil
}
