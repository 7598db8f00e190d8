package dto

import (
	"time"

	"github.com/jhoicas/invoicer/internal/domain/entity"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
	Category string `json:"category,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCustomerResponse mapea la entidad.
func NewCustomerResponse(c *entity.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Category:  c.Category,
		CreatedAt: c.CreatedAt,
	}
}

// SetModeRequest body para PUT /api/draft/mode.
type SetModeRequest struct {
	Mode entity.ItemMode `json:"mode"`
}

// InvoiceListResponse listado de facturas completadas.
type InvoiceListResponse struct {
	Items []entity.Invoice `json:"items"`
	Page  PageResponse     `json:"page"`
}

// SaveResponse resultado de guardar o eliminar: la operación local siempre aplica;
// Queued indica si la sincronización quedó encolada.
type SaveResponse struct {
	Invoice *entity.Invoice `json:"invoice,omitempty"`
	Queued  bool            `json:"queued"`
	Warning string          `json:"warning,omitempty"`
}

// DraftResponse borrador tras una mutación. ItemID es el id asignado al agregar una línea.
type DraftResponse struct {
	Invoice entity.Invoice `json:"invoice"`
	ItemID  string         `json:"item_id,omitempty"`
	Warning string         `json:"warning,omitempty"`
}

// StateResponse snapshot completo de la sesión del dueño.
type StateResponse struct {
	State entity.StoreState `json:"state"`
	View  string            `json:"view"`
	Plan  string            `json:"plan,omitempty"`
}
