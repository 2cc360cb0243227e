package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/SriHarshaKodavati/openBill/models"
)

// ShareGroup emails the team code and the current balances to req.Email on
// behalf of sender.
func ShareGroup(ctx context.Context, group *models.Group, sender string, req models.InviteRequest) error {
	ns := GetNotificationService()
	if ns == nil {
		return ErrEmailDisabled
	}

	snapshot, err := LoadSnapshot(ctx, group)
	if err != nil {
		return err
	}

	data := buildShareEmailData(ns, sender, strings.TrimSpace(req.Name), snapshot.BalanceSummary(), snapshot.SettleUp())
	plain, html, err := renderShareEmail(data)
	if err != nil {
		return fmt.Errorf("render share email: %w", err)
	}

	subject := fmt.Sprintf("%s shared \"%s\" with you on %s", sender, group.Name, ns.appName)
	return ns.sendEmail(ctx, strings.TrimSpace(req.Email), data.Recipient, subject, plain, html)
}
