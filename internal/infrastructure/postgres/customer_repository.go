package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, COALESCE(document, ''), COALESCE(phone, ''), COALESCE(email, ''),
		COALESCE(cep, ''), COALESCE(address, ''), COALESCE(neighborhood, ''), COALESCE(city, ''),
		COALESCE(state, ''), COALESCE(notes, ''), active, created_at, updated_at`

// CustomerRepo persistencia de clientes sobre PostgreSQL.
type CustomerRepo struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Document, &c.Phone, &c.Email,
		&c.CEP, &c.Address, &c.Neighborhood, &c.City,
		&c.State, &c.Notes, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente nuevo.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, document, phone, email, cep, address, neighborhood,
			city, state, notes, active, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
			NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), $12, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Document, customer.Phone, customer.Email,
		customer.CEP, customer.Address, customer.Neighborhood, customer.City, customer.State,
		customer.Notes, customer.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByPhone obtiene el cliente con ese teléfono (flujo público).
func (r *CustomerRepo) GetByPhone(phone string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1 ORDER BY created_at LIMIT 1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by phone: %w", err)
	}
	return c, nil
}

// List clientes con búsqueda por nombre/teléfono y paginación.
func (r *CustomerRepo) List(search string, limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR phone ILIKE '%' || $1 || '%')
		ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Update actualiza un cliente existente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, document = NULLIF($3, ''), phone = NULLIF($4, ''),
			email = NULLIF($5, ''), cep = NULLIF($6, ''), address = NULLIF($7, ''),
			neighborhood = NULLIF($8, ''), city = NULLIF($9, ''), state = NULLIF($10, ''),
			notes = NULLIF($11, ''), updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Document, customer.Phone, customer.Email,
		customer.CEP, customer.Address, customer.Neighborhood, customer.City, customer.State,
		customer.Notes,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// Deactivate baja lógica del cliente.
func (r *CustomerRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE customers SET active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate customer: %w", err)
	}
	return nil
}
