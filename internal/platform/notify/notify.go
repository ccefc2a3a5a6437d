package notify

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/fernhill/farmbox/internal/models"
	"github.com/fernhill/farmbox/pkg/config"
	"github.com/fernhill/farmbox/pkg/logctx"
)

// Notifier tells the customer about lifecycle events. Calls are
// fire-and-forget: a delivery failure is logged and never propagated into
// the billing transaction.
type Notifier interface {
	NotifyCancelled(ctx context.Context, sub *models.Subscription, reason string, immediate bool)
}

// MailNotifier sends plain-text emails over SMTP.
type MailNotifier struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

func NewNotifier(cfg *config.Config, log *zap.SugaredLogger) Notifier {
	return &MailNotifier{cfg: cfg, log: log}
}

func (n *MailNotifier) NotifyCancelled(ctx context.Context, sub *models.Subscription, reason string, immediate bool) {
	if sub.CustomerEmail == "" {
		logctx.FromCtx(ctx, n.log).Warnw("cancellation notice skipped, no customer email", "subscription_id", sub.ID)
		return
	}
	if n.cfg.SMTP.Host == "" {
		logctx.FromCtx(ctx, n.log).Infow("smtp not configured, cancellation notice skipped",
			"subscription_id", sub.ID, "email", sub.CustomerEmail)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.SMTP.From)
	m.SetHeader("To", sub.CustomerEmail)
	m.SetHeader("Subject", "Your veg box subscription has been cancelled")
	body := fmt.Sprintf("Hi %s,\n\nYour %s subscription has been cancelled.\nReason: %s\n",
		sub.CustomerName, sub.PlanName, reason)
	if !immediate && sub.EndsAt != nil {
		body += fmt.Sprintf("\nDeliveries you have already paid for continue until %s.\n",
			sub.EndsAt.Format("2 January 2006"))
	}
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(n.cfg.SMTP.Host, n.cfg.SMTP.Port, n.cfg.SMTP.Username, n.cfg.SMTP.Password)
	if err := d.DialAndSend(m); err != nil {
		logctx.FromCtx(ctx, n.log).Errorw("failed to send cancellation notice",
			"subscription_id", sub.ID, "err", err)
	}
}

var Module = fx.Options(
	fx.Provide(NewNotifier),
)
