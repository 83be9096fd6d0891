package email

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/pkg/config"
)

// Mailer envía correos transaccionales por SMTP. Si la configuración de
// correo está incompleta el Mailer queda deshabilitado y Send* es no-op.
type Mailer struct {
	dialer      *gomail.Dialer
	from        string
	companyName string
	enabled     bool
}

func NewMailer(cfg config.MailConfig, companyName string) *Mailer {
	m := &Mailer{
		from:        cfg.From,
		companyName: companyName,
		enabled:     cfg.Enabled(),
	}
	if m.enabled {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}
	return m
}

// SendOrderConfirmation envía el resumen del pedido recién creado.
func (m *Mailer) SendOrderConfirmation(order *entity.Order, items []*entity.OrderItem, productNames map[string]string, customer *entity.Customer) error {
	if !m.enabled || customer.Email == "" {
		return nil
	}

	var body strings.Builder
	fmt.Fprintf(&body, "<p>Hola %s,</p>", customer.Name)
	fmt.Fprintf(&body, "<p>Recibimos tu pedido <b>#%s</b>. Detalle:</p><ul>", shortID(order.ID))
	for _, item := range items {
		name := productNames[item.ProductID]
		if name == "" {
			name = item.ProductID
		}
		fmt.Fprintf(&body, "<li>%dx %s — %s</li>", item.Quantity, name, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&body, "</ul><p>Total: <b>%s</b></p>", order.Total.StringFixed(2))
	fmt.Fprintf(&body, "<p>%s</p>", m.companyName)

	subject := fmt.Sprintf("Pedido #%s recibido", shortID(order.ID))
	return m.send(customer.Email, subject, body.String())
}

// SendPaymentApproved avisa al cliente que su pago fue acreditado.
func (m *Mailer) SendPaymentApproved(order *entity.Order, customer *entity.Customer) error {
	if !m.enabled || customer.Email == "" {
		return nil
	}

	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Tu pago del pedido <b>#%s</b> por <b>%s</b> fue aprobado. Ya estamos preparando tu entrega.</p><p>%s</p>",
		customer.Name, shortID(order.ID), order.Total.StringFixed(2), m.companyName,
	)
	subject := fmt.Sprintf("Pago aprobado - Pedido #%s", shortID(order.ID))
	return m.send(customer.Email, subject, body)
}

// SendOrderDelivered avisa que el pedido fue entregado.
func (m *Mailer) SendOrderDelivered(order *entity.Order, customer *entity.Customer) error {
	if !m.enabled || customer.Email == "" {
		return nil
	}

	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>Tu pedido <b>#%s</b> fue entregado. ¡Gracias por tu compra!</p><p>%s</p>",
		customer.Name, shortID(order.ID), m.companyName,
	)
	subject := fmt.Sprintf("Pedido #%s entregado", shortID(order.ID))
	return m.send(customer.Email, subject, body)
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviando correo a %s: %w", to, err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
