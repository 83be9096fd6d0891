package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
)

// LinkBuilder construye enlaces wa.me con el resumen del pedido, para que el
// personal confirme por WhatsApp con un clic. No llama a ninguna API.
type LinkBuilder struct {
	businessPhone string // dígitos con código de país, ej. 5511999990000
	companyName   string
}

func NewLinkBuilder(businessPhone, companyName string) *LinkBuilder {
	return &LinkBuilder{
		businessPhone: sanitizePhone(businessPhone),
		companyName:   companyName,
	}
}

// OrderLink devuelve el enlace wa.me hacia el teléfono del cliente con el
// resumen del pedido prellenado.
func (b *LinkBuilder) OrderLink(order *entity.Order, items []*entity.OrderItem, productNames map[string]string, customer *entity.Customer) string {
	phone := sanitizePhone(customer.Phone)
	if phone == "" {
		return ""
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "Hola %s! Tu pedido #%s fue recibido.\n\n", customer.Name, shortID(order.ID))
	for _, item := range items {
		name := productNames[item.ProductID]
		if name == "" {
			name = item.ProductID
		}
		fmt.Fprintf(&msg, "- %dx %s\n", item.Quantity, name)
	}
	fmt.Fprintf(&msg, "\nTotal: %s\n", order.Total.StringFixed(2))
	if b.companyName != "" {
		fmt.Fprintf(&msg, "\n%s", b.companyName)
	}

	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(msg.String())
}

// sanitizePhone deja solo dígitos.
func sanitizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// shortID los primeros 8 caracteres del UUID, suficiente para referencia humana.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
