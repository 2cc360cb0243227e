package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/SriHarshaKodavati/openBill/config"
	"github.com/SriHarshaKodavati/openBill/models"
	"github.com/SriHarshaKodavati/openBill/utils"
)

type sendFunc func(ctx context.Context, m *mail.SGMailV3) error

type NotificationService struct {
	send    sendFunc
	from    *mail.Email
	appName string
	appURL  string
}

var notifService *NotificationService

// InitNotifications configures the shared service. Without an API key the
// service stays nil and email features report ErrEmailDisabled.
func InitNotifications(cfg *config.Config) {
	if !cfg.EmailEnabled() {
		notifService = nil
		slog.Info("SendGrid not configured, email disabled")
		return
	}

	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)
	notifService = newNotificationService(cfg, func(ctx context.Context, m *mail.SGMailV3) error {
		resp, err := client.SendWithContext(ctx, m)
		if err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
		}
		return nil
	})
}

func newNotificationService(cfg *config.Config, send sendFunc) *NotificationService {
	return &NotificationService{
		send:    send,
		from:    mail.NewEmail(cfg.AppName, cfg.SendGridFrom),
		appName: cfg.AppName,
		appURL:  cfg.AppURL,
	}
}

func GetNotificationService() *NotificationService {
	return notifService
}

func (ns *NotificationService) sendEmail(ctx context.Context, toEmail, toName, subject, plain, html string) error {
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(ns.from, subject, to, plain, html)
	if err := ns.send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "❌ Email send failed", "to", toEmail, "error", err)
		return fmt.Errorf("send email: %w", err)
	}
	slog.InfoContext(ctx, "✅ Email sent", "to", toEmail)
	return nil
}

// ============================================================
// EMAIL TEMPLATES
// ============================================================

type shareEmailData struct {
	AppName   string
	JoinURL   string
	Sender    string
	Recipient string
	Group     string
	TeamCode  string
	Total     string
	Balances  []balanceLine
	Payments  []string
}

type balanceLine struct {
	Member string
	Amount string
	Status string
}

var shareEmailHTML = template.Must(template.New("share").Parse(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #2563eb; margin-top: 0;">🧾 {{.Group}}</h2>
		<p>Hi{{if .Recipient}} <strong>{{.Recipient}}</strong>{{end}},</p>
		<p><strong>{{.Sender}}</strong> shared the group <strong>"{{.Group}}"</strong> with you on {{.AppName}}.</p>
		<div style="background: #f8f9fa; border-radius: 8px; padding: 16px; margin: 16px 0; text-align: center;">
			<p style="margin: 4px 0; color: #666;">Team code</p>
			<p style="margin: 4px 0; font-size: 24px; letter-spacing: 4px;"><strong>{{.TeamCode}}</strong></p>
		</div>
		<p style="color: #666;">Total spent: {{.Total}}</p>
		<table style="width: 100%; border-collapse: collapse;">
			{{range .Balances}}<tr><td style="padding: 4px 0;">{{.Member}}</td><td style="padding: 4px 0; text-align: right;">{{.Amount}}</td><td style="padding: 4px 8px; color: #999;">{{.Status}}</td></tr>
			{{end}}
		</table>
		{{if .Payments}}<h3>Settlement suggestions</h3>
		<ul>{{range .Payments}}<li>{{.}}</li>{{end}}</ul>{{else}}<p>Everyone is settled up. 🎉</p>{{end}}
		<div style="margin: 24px 0;">
			<a href="{{.JoinURL}}" style="background: #2563eb; color: white; padding: 12px 32px; border-radius: 8px; text-decoration: none; font-weight: bold;">Open {{.AppName}}</a>
		</div>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">{{.AppName}}</p>
	</div>
</body>
</html>`))

func buildShareEmailData(ns *NotificationService, sender, recipient string, summary models.GroupBalanceSummary, settle models.SettleUpResponse) shareEmailData {
	data := shareEmailData{
		AppName:   ns.appName,
		JoinURL:   ns.appURL,
		Sender:    sender,
		Recipient: recipient,
		Group:     summary.GroupName,
		TeamCode:  summary.TeamCode,
		Total:     utils.FormatAmount(summary.TotalSpent),
		Payments:  settle.Messages,
	}
	for _, b := range summary.Balances {
		data.Balances = append(data.Balances, balanceLine{
			Member: b.Member,
			Amount: utils.FormatAmount(b.Balance),
			Status: b.Status,
		})
	}
	return data
}

func renderShareEmail(data shareEmailData) (plain, html string, err error) {
	var buf bytes.Buffer
	if err := shareEmailHTML.Execute(&buf, data); err != nil {
		return "", "", err
	}

	var text bytes.Buffer
	fmt.Fprintf(&text, "%s shared \"%s\" with you on %s.\n", data.Sender, data.Group, data.AppName)
	fmt.Fprintf(&text, "Team code: %s\n\n", data.TeamCode)
	fmt.Fprintf(&text, "Total spent: %s\n", data.Total)
	for _, b := range data.Balances {
		fmt.Fprintf(&text, "  %s: %s (%s)\n", b.Member, b.Amount, b.Status)
	}
	if len(data.Payments) > 0 {
		text.WriteString("\nSettlement suggestions:\n")
		for _, p := range data.Payments {
			fmt.Fprintf(&text, "  - %s\n", p)
		}
	}
	fmt.Fprintf(&text, "\n%s\n", data.JoinURL)
	return text.String(), buf.String(), nil
}
