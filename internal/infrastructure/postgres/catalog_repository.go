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

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CategoryRepo persistencia de categorías.
type CategoryRepo struct {
	q Querier
}

func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `INSERT INTO categories (id, name, description, active) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Name, category.Description, category.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT id, name, COALESCE(description, ''), active FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) GetByName(name string) (*entity.Category, error) {
	query := `SELECT id, name, COALESCE(description, ''), active FROM categories WHERE lower(name) = lower($1)`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, name).Scan(&c.ID, &c.Name, &c.Description, &c.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) List(activeOnly bool) ([]*entity.Category, error) {
	query := `SELECT id, name, COALESCE(description, ''), active FROM categories WHERE (NOT $1 OR active) ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// SupplierRepo persistencia de proveedores.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) Create(supplier *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, contact_name, phone, email, address, active)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)`
	_, err := r.q.Exec(context.Background(), query,
		supplier.ID, supplier.Name, supplier.ContactName, supplier.Phone,
		supplier.Email, supplier.Address, supplier.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `
		SELECT id, name, COALESCE(contact_name, ''), COALESCE(phone, ''), COALESCE(email, ''),
			COALESCE(address, ''), active
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	query := `
		SELECT id, name, COALESCE(contact_name, ''), COALESCE(phone, ''), COALESCE(email, ''),
			COALESCE(address, ''), active
		FROM suppliers WHERE lower(name) = lower($1)`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, name).Scan(
		&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address, &s.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier by name: %w", err)
	}
	return &s, nil
}

func (r *SupplierRepo) List(activeOnly bool) ([]*entity.Supplier, error) {
	query := `
		SELECT id, name, COALESCE(contact_name, ''), COALESCE(phone, ''), COALESCE(email, ''),
			COALESCE(address, ''), active
		FROM suppliers WHERE (NOT $1 OR active) ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactName, &s.Phone, &s.Email, &s.Address, &s.Active); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}
