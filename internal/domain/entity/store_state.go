package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceSettings valores por defecto para nuevas facturas.
type InvoiceSettings struct {
	TaxEnabled    bool            `json:"tax_enabled"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
	DefaultMode   ItemMode        `json:"default_mode"`
}

// Tipos de aviso de sincronización.
const (
	NoticeRetrying     = "retrying"      // sin conexión: se muestran datos locales y se reintenta
	NoticeLimitReached = "limit_reached" // cuota del plan agotada: requiere acción del usuario
	NoticeRejected     = "rejected"      // rechazo terminal distinto de la cuota (dueño ajeno, datos corruptos)
)

// Notice aviso no bloqueante surgido del drenado de la cola.
type Notice struct {
	Kind     string    `json:"kind"`
	EntityID string    `json:"entity_id,omitempty"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// StoreState snapshot persistido del motor de facturas de un usuario.
// IsOffline y PendingOperations son informativos: nunca bloquean mutaciones.
type StoreState struct {
	CurrentInvoice    *Invoice        `json:"current_invoice,omitempty"`
	CompletedInvoices []Invoice       `json:"completed_invoices"`
	UserID            string          `json:"user_id"`
	IsOffline         bool            `json:"is_offline"`
	PendingOperations int             `json:"pending_operations"`
	Settings          InvoiceSettings `json:"settings"`
	Notices           []Notice        `json:"notices,omitempty"`
}

// Clone copia profunda del estado.
func (s StoreState) Clone() StoreState {
	out := s
	if s.CurrentInvoice != nil {
		c := s.CurrentInvoice.Clone()
		out.CurrentInvoice = &c
	}
	out.CompletedInvoices = make([]Invoice, len(s.CompletedInvoices))
	for i, inv := range s.CompletedInvoices {
		out.CompletedInvoices[i] = inv.Clone()
	}
	out.Notices = append([]Notice(nil), s.Notices...)
	return out
}
