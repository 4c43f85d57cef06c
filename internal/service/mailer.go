package service

import (
	"fmt"

	"github.com/talkincode/toughstore/config"
	"github.com/talkincode/toughstore/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. A disabled SMTP config turns every
// send into a no-op so the workflow never depends on a mail server.
type Mailer struct {
	cfg config.SmtpConfig
}

func NewMailer(cfg config.SmtpConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendOrderConfirmation mails the order summary to the buyer.
// Best effort: failures are logged, never propagated into the order
// workflow.
func (m *Mailer) SendOrderConfirmation(user *domain.User, order *domain.Order) {
	if !m.cfg.Enabled || user.Email == "" {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Order %s confirmed", order.OrderNumber))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nyour order %s has been received.\n\nSubtotal: %.2f\nTax: %.2f\nShipping: %.2f\nTotal: %.2f\n",
		user.FullName(), order.OrderNumber,
		order.SubTotal, order.TaxAmount, order.ShippingAmount, order.TotalAmount))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		zap.L().Error("failed to send order confirmation mail",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
		return
	}
	zap.L().Info("order confirmation mail sent",
		zap.String("order_number", order.OrderNumber), zap.String("to", user.Email))
}
