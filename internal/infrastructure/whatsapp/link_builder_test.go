package whatsapp_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/infrastructure/whatsapp"
)

func TestOrderLink_GeneraEnlaceConResumen(t *testing.T) {
	builder := whatsapp.NewLinkBuilder("+55 11 99999-0000", "Distribuidora Central")

	order := &entity.Order{
		ID:    "a1b2c3d4-0000-0000-0000-000000000000",
		Total: decimal.RequireFromString("150.50"),
	}
	items := []*entity.OrderItem{
		{ProductID: "p-1", Quantity: 3},
		{ProductID: "p-2", Quantity: 1},
	}
	names := map[string]string{"p-1": "Agua Mineral 500ml", "p-2": "Gaseosa Cola 2L"}
	customer := &entity.Customer{Name: "María", Phone: "(11) 98888-7777"}

	link := builder.OrderLink(order, items, names, customer)

	require.True(t, strings.HasPrefix(link, "https://wa.me/11988887777?text="), "el enlace debe apuntar al teléfono del cliente: %s", link)

	decoded, err := url.QueryUnescape(strings.TrimPrefix(link, "https://wa.me/11988887777?text="))
	require.NoError(t, err)
	assert.Contains(t, decoded, "María")
	assert.Contains(t, decoded, "#a1b2c3d4")
	assert.Contains(t, decoded, "3x Agua Mineral 500ml")
	assert.Contains(t, decoded, "Total: 150.50")
	assert.Contains(t, decoded, "Distribuidora Central")
}

func TestOrderLink_ClienteSinTelefono(t *testing.T) {
	builder := whatsapp.NewLinkBuilder("5511999990000", "Distribuidora Central")

	link := builder.OrderLink(&entity.Order{ID: "x", Total: decimal.Zero}, nil, nil, &entity.Customer{Name: "Sin Teléfono"})

	assert.Empty(t, link)
}
