package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tabla de transiciones del pedido:
//   pending → confirmed → preparing → delivered
//   preparing → pending (entrega fallida, reenvío)
//   cancelled alcanzable desde cualquier estado no terminal
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_FlujoNormal(t *testing.T) {
	assert.True(t, order.CanTransition(entity.OrderStatusPending, entity.OrderStatusConfirmed))
	assert.True(t, order.CanTransition(entity.OrderStatusConfirmed, entity.OrderStatusPreparing))
	assert.True(t, order.CanTransition(entity.OrderStatusPreparing, entity.OrderStatusDelivered))
}

func TestCanTransition_EntregaFallidaVuelveAPendiente(t *testing.T) {
	assert.True(t, order.CanTransition(entity.OrderStatusPreparing, entity.OrderStatusPending),
		"una entrega fallida debe poder devolver el pedido a pending para reenvío")
}

func TestCanTransition_CancelacionDesdeNoTerminales(t *testing.T) {
	for _, from := range []string{
		entity.OrderStatusPending,
		entity.OrderStatusConfirmed,
		entity.OrderStatusPreparing,
	} {
		assert.True(t, order.CanTransition(from, entity.OrderStatusCancelled),
			"cancelled debe ser alcanzable desde %s", from)
	}
}

func TestCanTransition_SaltosIlegales(t *testing.T) {
	// pending → delivered directo está prohibido
	assert.False(t, order.CanTransition(entity.OrderStatusPending, entity.OrderStatusDelivered))
	// confirmed → delivered sin pasar por preparing está prohibido
	assert.False(t, order.CanTransition(entity.OrderStatusConfirmed, entity.OrderStatusDelivered))
	// los terminales no tienen salida
	assert.False(t, order.CanTransition(entity.OrderStatusDelivered, entity.OrderStatusCancelled))
	assert.False(t, order.CanTransition(entity.OrderStatusCancelled, entity.OrderStatusPending))
	// un estado no puede "transicionar" a sí mismo
	assert.False(t, order.CanTransition(entity.OrderStatusConfirmed, entity.OrderStatusConfirmed))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, order.IsTerminal(entity.OrderStatusDelivered))
	assert.True(t, order.IsTerminal(entity.OrderStatusCancelled))
	assert.False(t, order.IsTerminal(entity.OrderStatusPending))
	assert.False(t, order.IsTerminal(entity.OrderStatusPreparing))
	assert.False(t, order.IsTerminal("desconocido"), "un estado inválido no es terminal")
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"pending", "confirmed", "preparing", "delivered", "cancelled"} {
		assert.True(t, order.ValidStatus(s), s)
	}
	assert.False(t, order.ValidStatus("shipped"))
	assert.False(t, order.ValidStatus(""))
}
