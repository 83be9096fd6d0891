package usecase

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Distribuidora-api/internal/application/dto"
	"github.com/jhoicas/Distribuidora-api/internal/domain"
	"github.com/jhoicas/Distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/Distribuidora-api/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

func (uc *CustomerUseCase) Create(req *dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("el nombre es obligatorio: %w", domain.ErrInvalidInput)
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		existing, err := uc.customerRepo.GetByPhone(phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("teléfono %s: %w", phone, domain.ErrDuplicate)
		}
	}

	customer := &entity.Customer{
		ID:           uuid.NewString(),
		Name:         name,
		Document:     req.Document,
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		CEP:          req.CEP,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		Notes:        req.Notes,
		Active:       true,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) Get(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) List(search string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	customers, err := uc.customerRepo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func (uc *CustomerUseCase) Update(id string, req *dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("el nombre no puede quedar vacío: %w", domain.ErrInvalidInput)
		}
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Document != nil {
		customer.Document = *req.Document
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		customer.Email = strings.TrimSpace(*req.Email)
	}
	if req.CEP != nil {
		customer.CEP = *req.CEP
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Neighborhood != nil {
		customer.Neighborhood = *req.Neighborhood
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func (uc *CustomerUseCase) Deactivate(id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("cliente %s: %w", id, domain.ErrNotFound)
	}
	return uc.customerRepo.Deactivate(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Document:     c.Document,
		Phone:        c.Phone,
		Email:        c.Email,
		CEP:          c.CEP,
		Address:      c.Address,
		Neighborhood: c.Neighborhood,
		City:         c.City,
		State:        c.State,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
	}
}
