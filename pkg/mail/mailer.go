// Package mail sends the transactional emails of the ordering flow: the
// simplified plain-text receipt after checkout and the per-transition
// order status notifications. Sending is always best-effort; callers
// log failures and move on.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/pedefood/pedefood-backend/config"
	"github.com/pedefood/pedefood-backend/pkg/logger"
)

type ReceiptItem struct {
	Quantity   int
	Name       string
	Restaurant string
	UnitPrice  float64
}

// Receipt carries everything the plain-text receipt email needs.
type Receipt struct {
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	Items         []ReceiptItem
	Subtotal      float64
	DeliveryFee   float64
	Total         float64
	PaymentMethod string
	AddressLines  []string
}

type Mailer struct {
	cfg config.SMTPConfig
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendReceipt sends the simplified receipt for a completed checkout.
func (m *Mailer) SendReceipt(receipt Receipt) error {
	subject := fmt.Sprintf("NFe Simplificada - Pedido #%s", receipt.OrderNumber)
	return m.send(receipt.CustomerEmail, subject, formatReceipt(receipt))
}

// SendStatusUpdate notifies the customer that their order advanced to a
// new status.
func (m *Mailer) SendStatusUpdate(toEmail, orderNumber, statusMessage string) error {
	subject := fmt.Sprintf("Atualização do Pedido #%s", orderNumber)
	body := fmt.Sprintf(
		"Pedido #%s\n\n%s\n\nAcompanhe seu pedido pelo aplicativo.\n",
		orderNumber, statusMessage,
	)
	return m.send(toEmail, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	// Dev mode: without SMTP credentials the email is only logged
	if !m.cfg.Configured() {
		logger.Info("[dev mode] email not sent, logging instead", map[string]interface{}{
			"to":      to,
			"subject": subject,
		})
		return nil
	}

	msg := strings.Join([]string{
		fmt.Sprintf("From: %s", m.cfg.From),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	logger.Debug("Email sent", map[string]interface{}{
		"to":      to,
		"subject": subject,
	})
	return nil
}

func formatReceipt(r Receipt) string {
	var b strings.Builder

	b.WriteString("NOTA FISCAL ELETRÔNICA SIMPLIFICADA\n")
	b.WriteString("----------------------------------\n")
	fmt.Fprintf(&b, "Pedido #%s\n", r.OrderNumber)
	fmt.Fprintf(&b, "Data: %s\n\n", time.Now().Format("02/01/2006"))

	b.WriteString("CLIENTE\n")
	fmt.Fprintf(&b, "Nome: %s\n", r.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n\n", r.CustomerEmail)

	b.WriteString("ITENS DO PEDIDO\n")
	for _, item := range r.Items {
		fmt.Fprintf(&b, "%dx %s (%s) - R$ %.2f\n",
			item.Quantity, item.Name, item.Restaurant,
			item.UnitPrice*float64(item.Quantity),
		)
	}

	fmt.Fprintf(&b, "\nSUBTOTAL: R$ %.2f\n", r.Subtotal)
	fmt.Fprintf(&b, "TAXA DE ENTREGA: R$ %.2f\n", r.DeliveryFee)
	fmt.Fprintf(&b, "TOTAL: R$ %.2f\n\n", r.Total)

	b.WriteString("FORMA DE PAGAMENTO\n")
	fmt.Fprintf(&b, "%s\n\n", strings.ToUpper(r.PaymentMethod))

	b.WriteString("ENDEREÇO DE ENTREGA\n")
	for _, line := range r.AddressLines {
		if line != "" {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n----------------------------------\n")
	b.WriteString("PedeFood - Nota Fiscal Eletrônica Simplificada\n")
	b.WriteString("Este documento não possui valor fiscal\n")

	return b.String()
}
