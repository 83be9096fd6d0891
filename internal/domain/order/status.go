// Package order contiene las reglas de la máquina de estados del pedido.
package order

import "github.com/jhoicas/Distribuidora-api/internal/domain/entity"

// transiciones permitidas (origen -> destinos). cancelled es alcanzable desde
// cualquier estado no terminal; delivered y cancelled son terminales.
var transitions = map[string][]string{
	entity.OrderStatusPending:   {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
	entity.OrderStatusConfirmed: {entity.OrderStatusPreparing, entity.OrderStatusCancelled},
	entity.OrderStatusPreparing: {entity.OrderStatusDelivered, entity.OrderStatusPending, entity.OrderStatusCancelled},
	entity.OrderStatusDelivered: {},
	entity.OrderStatusCancelled: {},
}

// ValidStatus verifica que s sea un estado de pedido reconocido.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal indica si ningún estado es alcanzable desde s.
func IsTerminal(s string) bool {
	return len(transitions[s]) == 0 && ValidStatus(s)
}

// CanTransition indica si el salto from -> to está permitido por la tabla.
// preparing -> pending cubre la entrega fallida (reenvío posterior).
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
