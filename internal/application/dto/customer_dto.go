package dto

import "time"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name         string `json:"name"`
	Document     string `json:"document"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	CEP          string `json:"cep"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Notes        string `json:"notes"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id (campos opcionales).
type UpdateCustomerRequest struct {
	Name         *string `json:"name"`
	Document     *string `json:"document"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	CEP          *string `json:"cep"`
	Address      *string `json:"address"`
	Neighborhood *string `json:"neighborhood"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Notes        *string `json:"notes"`
}

// CustomerResponse representación pública del cliente.
type CustomerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Document     string    `json:"document,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	CEP          string    `json:"cep,omitempty"`
	Address      string    `json:"address,omitempty"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
