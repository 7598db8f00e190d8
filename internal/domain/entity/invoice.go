package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de una factura en el motor local.
type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"     // en edición
	StatusPending   InvoiceStatus = "pending"   // guardada, pendiente de confirmación remota
	StatusCompleted InvoiceStatus = "completed" // confirmada por el servicio remoto
)

// WireStatusSynced estado que usa el servicio remoto para facturas persistidas.
const WireStatusSynced = "synced"

// StatusFromWire traduce el estado del servicio remoto al estado de visualización.
func StatusFromWire(s string) InvoiceStatus {
	switch s {
	case WireStatusSynced, string(StatusCompleted):
		return StatusCompleted
	case string(StatusPending):
		return StatusPending
	default:
		return StatusDraft
	}
}

// DefaultCustomerCategory categoría usada cuando el cliente no trae una.
const DefaultCustomerCategory = "Customer"

// CustomerSnapshot copia desnormalizada del cliente embebida en la factura.
// No es una referencia viva: la factura histórica no cambia si cambia el cliente.
type CustomerSnapshot struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Category string `json:"category"`
}

// Invoice representa una factura (borrador o completada).
// Subtotal, TaxAmount y Total son derivados: solo los escribe el calculador de totales.
type Invoice struct {
	ID            string           `json:"id"`
	OwnerID       string           `json:"owner_id"`
	InvoiceNumber string           `json:"invoice_number"`
	Sequence      int              `json:"sequence"`
	InvoiceDate   time.Time        `json:"invoice_date"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	SyncedAt      *time.Time       `json:"synced_at,omitempty"`
	Customer      CustomerSnapshot `json:"customer"`
	Mode          ItemMode         `json:"mode"`
	Items         Items            `json:"items"`
	Subtotal      decimal.Decimal  `json:"subtotal"`
	ShippingCost  decimal.Decimal  `json:"shipping_cost"`
	TaxEnabled    bool             `json:"tax_enabled"`
	TaxPercentage decimal.Decimal  `json:"tax_percentage"`
	TaxAmount     decimal.Decimal  `json:"tax_amount"`
	Total         decimal.Decimal  `json:"total"`
	Note          string           `json:"note,omitempty"`
	Status        InvoiceStatus    `json:"status"`
}

// Clone copia profunda (ítems y puntero de SyncedAt) para entregar snapshots.
func (inv Invoice) Clone() Invoice {
	out := inv
	out.Items = inv.Items.Clone()
	if inv.SyncedAt != nil {
		t := *inv.SyncedAt
		out.SyncedAt = &t
	}
	return out
}
