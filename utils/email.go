package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"

	"loja-backend/mercadopago"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

func SendWelcomeEmail(email, name string) {
	go func() {
		subject := "Bem-vindo à Loja!"
		body := fmt.Sprintf(`<h2>Bem-vindo à Loja, %s!</h2>
<p>Sua conta foi criada com sucesso. Agora você pode:</p>
<ul>
<li>Navegar pelo catálogo e montar seu carrinho</li>
<li>Salvar produtos na sua lista de desejos</li>
<li>Acompanhar seus pedidos</li>
</ul>
<p>Boas compras!</p>
<p>Equipe da Loja</p>`, firstName(name))
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()
}

// Mailer sends the three payment-resolution emails. The webhook handler takes
// this as an interface so tests can count sends.
type Mailer interface {
	SendPaymentApproved(entry *CheckoutEntry, payment *mercadopago.Payment) error
	SendPaymentPending(entry *CheckoutEntry, payment *mercadopago.Payment) error
	SendPaymentRejected(entry *CheckoutEntry, payment *mercadopago.Payment) error
}

// SMTPMailer is the production Mailer backed by SendEmail.
type SMTPMailer struct{}

func (SMTPMailer) SendPaymentApproved(entry *CheckoutEntry, payment *mercadopago.Payment) error {
	subject := fmt.Sprintf("Pedido confirmado - %s", payment.ExternalReference)
	body := fmt.Sprintf(`<h2>Pagamento aprovado!</h2>
<p>Olá %s,</p>
<p>Recebemos o pagamento do seu pedido <strong>%s</strong>.</p>
%s
<p>Em breve você receberá as informações de envio.</p>
<p>Equipe da Loja</p>`, firstName(entry.Customer.Name), payment.ExternalReference, orderSummaryHTML(entry, payment))
	return SendEmail(entry.Customer.Email, subject, body)
}

func (SMTPMailer) SendPaymentPending(entry *CheckoutEntry, payment *mercadopago.Payment) error {
	subject := fmt.Sprintf("Pagamento em análise - %s", payment.ExternalReference)
	body := fmt.Sprintf(`<h2>Pagamento em análise</h2>
<p>Olá %s,</p>
<p>O pagamento do seu pedido <strong>%s</strong> está em análise. Avisaremos assim que for confirmado.</p>
%s
<p>Equipe da Loja</p>`, firstName(entry.Customer.Name), payment.ExternalReference, orderSummaryHTML(entry, payment))
	return SendEmail(entry.Customer.Email, subject, body)
}

func (SMTPMailer) SendPaymentRejected(entry *CheckoutEntry, payment *mercadopago.Payment) error {
	subject := fmt.Sprintf("Pagamento recusado - %s", payment.ExternalReference)
	body := fmt.Sprintf(`<h2>Pagamento recusado</h2>
<p>Olá %s,</p>
<p>O pagamento do seu pedido <strong>%s</strong> não foi aprovado (%s).</p>
<p>Nenhum valor foi cobrado. Você pode tentar novamente com outra forma de pagamento.</p>
<p>Equipe da Loja</p>`, firstName(entry.Customer.Name), payment.ExternalReference, payment.StatusDetail)
	return SendEmail(entry.Customer.Email, subject, body)
}

// orderSummaryHTML renders the stashed cart plus the live payment details as
// the email body table.
func orderSummaryHTML(entry *CheckoutEntry, payment *mercadopago.Payment) string {
	var b strings.Builder
	b.WriteString(`<table style="border-collapse:collapse;width:100%;max-width:480px;">`)
	for _, item := range entry.Cart {
		fmt.Fprintf(&b, `<tr><td style="padding:4px 8px;">%dx %s</td><td style="padding:4px 8px;text-align:right;">R$ %.2f</td></tr>`,
			item.Quantity, item.Name, item.Price*float64(item.Quantity))
	}
	fmt.Fprintf(&b, `<tr><td style="padding:4px 8px;">Frete</td><td style="padding:4px 8px;text-align:right;">R$ %.2f</td></tr>`, entry.Shipping)
	if entry.Discount > 0 {
		fmt.Fprintf(&b, `<tr><td style="padding:4px 8px;">Desconto</td><td style="padding:4px 8px;text-align:right;">-R$ %.2f</td></tr>`, entry.Discount)
	}
	fmt.Fprintf(&b, `<tr><td style="padding:4px 8px;"><strong>Total</strong></td><td style="padding:4px 8px;text-align:right;"><strong>R$ %.2f</strong></td></tr>`, entry.Total)
	b.WriteString(`</table>`)
	if payment.PaymentMethodID != "" {
		fmt.Fprintf(&b, `<p>Forma de pagamento: %s</p>`, payment.PaymentMethodID)
	}
	return b.String()
}

func firstName(name string) string {
	if name == "" {
		return "cliente"
	}
	return strings.Split(name, " ")[0]
}
