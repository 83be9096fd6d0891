package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrEmptyCart            = errors.New("el pedido no tiene ítems")
	ErrMissingPaymentMethod = errors.New("método de pago no reconocido")
	ErrIllegalTransition    = errors.New("transición de estado no permitida")
	ErrAlreadyAssigned      = errors.New("el pedido ya tiene una entrega asignada")
	ErrOrderNotReady        = errors.New("el pedido no está listo para entrega")
	ErrCourierNotFound      = errors.New("repartidor no encontrado o inactivo")
	ErrExternalService      = errors.New("servicio externo no disponible")
)

// InsufficientStockError detalla qué producto rechazó el pedido y cuánto había disponible.
// errors.Is(err, ErrInsufficientStock) retorna true para este tipo.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %d, solicitado %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// IllegalTransitionError detalla un salto de estado rechazado por la máquina de estados.
// errors.Is(err, ErrIllegalTransition) retorna true para este tipo.
type IllegalTransitionError struct {
	From string
	To   string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("transición de estado no permitida: %s -> %s", e.From, e.To)
}

func (e *IllegalTransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}
