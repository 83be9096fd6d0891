package entity

import "time"

// Customer representa un cliente. En el flujo público se crea con el primer
// pedido y se busca por teléfono (a lo sumo un cliente por teléfono, best-effort).
type Customer struct {
	ID       string
	Name     string
	Document string // CPF/CNPJ, solo almacenado; la validación vive en el boundary
	Phone    string
	Email    string

	// Dirección estructurada.
	CEP          string
	Address      string
	Neighborhood string
	City         string
	State        string

	Notes     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
