package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/invoicer/internal/application/dto"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, now: time.Now}
}

// Create crea un nuevo cliente. Nombre y teléfono son obligatorios.
func (uc *CustomerUseCase) Create(ctx context.Context, ownerID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	var errs domain.ValidationErrors
	name, phone := strings.TrimSpace(in.Name), strings.TrimSpace(in.Phone)
	if name == "" {
		errs.Add("name", "el nombre es obligatorio")
	}
	if phone == "" {
		errs.Add("phone", "el teléfono es obligatorio")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = entity.DefaultCustomerCategory
	}
	now := uc.now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Phone:     phone,
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(customer), nil
}

// List lista clientes del dueño.
func (uc *CustomerUseCase) List(ctx context.Context, ownerID string, page dto.PageRequest) ([]*dto.CustomerResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOwner(ctx, ownerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCustomerResponse(c))
	}
	return out, nil
}

// Get devuelve el cliente si pertenece al dueño.
func (uc *CustomerUseCase) Get(ctx context.Context, ownerID, id string) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

// Snapshot copia del cliente lista para embeber en el borrador.
func (uc *CustomerUseCase) Snapshot(ctx context.Context, ownerID, id string) (entity.CustomerSnapshot, error) {
	c, err := uc.Get(ctx, ownerID, id)
	if err != nil {
		return entity.CustomerSnapshot{}, err
	}
	return c.Snapshot(), nil
}
