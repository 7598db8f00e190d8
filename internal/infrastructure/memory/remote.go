// Package memory implementa los puertos de repositorio en memoria, para desarrollo
// local sin base de datos y para tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/invoicenumber"
	"github.com/jhoicas/invoicer/internal/domain/repository"
)

var _ repository.RemoteInvoiceService = (*RemoteService)(nil)

// RemoteService servicio remoto de facturas en memoria con cuota mensual opcional.
type RemoteService struct {
	mu           sync.Mutex
	invoices     map[string]entity.Invoice
	sequences    map[string]int
	monthlyLimit int
	failures     []error
	seqErr       error
	calls        []string
}

// NewRemoteService monthlyLimit 0 = sin límite.
func NewRemoteService(monthlyLimit int) *RemoteService {
	return &RemoteService{
		invoices:     make(map[string]entity.Invoice),
		sequences:    make(map[string]int),
		monthlyLimit: monthlyLimit,
	}
}

// FailNext hace que las próximas llamadas de Upsert/Delete fallen con los errores dados, en orden.
func (r *RemoteService) FailNext(errs ...error) {
	r.mu.Lock()
	r.failures = append(r.failures, errs...)
	r.mu.Unlock()
}

// FailSequences hace fallar NextSequence mientras err != nil.
func (r *RemoteService) FailSequences(err error) {
	r.mu.Lock()
	r.seqErr = err
	r.mu.Unlock()
}

// SetMonthlyLimit cambia la cuota (ej. tras subir de plan).
func (r *RemoteService) SetMonthlyLimit(n int) {
	r.mu.Lock()
	r.monthlyLimit = n
	r.mu.Unlock()
}

// Calls registro de llamadas "upsert:<id>" / "delete:<id>" en orden.
func (r *RemoteService) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// Get factura almacenada.
func (r *RemoteService) Get(id string) (entity.Invoice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.invoices[id]
	return inv.Clone(), ok
}

func (r *RemoteService) popFailure() error {
	if len(r.failures) == 0 {
		return nil
	}
	err := r.failures[0]
	r.failures = r.failures[1:]
	return err
}

func (r *RemoteService) Upsert(_ context.Context, inv entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "upsert:"+inv.ID)
	if err := r.popFailure(); err != nil {
		return err
	}
	if inv.ID == "" || inv.OwnerID == "" {
		return fmt.Errorf("%w: factura sin id o sin dueño", domain.ErrInvalidInput)
	}
	if _, exists := r.invoices[inv.ID]; !exists && r.monthlyLimit > 0 {
		if r.countMonth(inv) >= r.monthlyLimit {
			return domain.ErrLimitReached
		}
	}
	stored := inv.Clone()
	stored.Status = entity.StatusCompleted
	r.invoices[inv.ID] = stored
	return nil
}

func (r *RemoteService) countMonth(inv entity.Invoice) int {
	y, m, _ := inv.InvoiceDate.Date()
	n := 0
	for _, other := range r.invoices {
		oy, om, _ := other.InvoiceDate.Date()
		if other.OwnerID == inv.OwnerID && oy == y && om == m {
			n++
		}
	}
	return n
}

func (r *RemoteService) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "delete:"+id)
	if err := r.popFailure(); err != nil {
		return err
	}
	if inv, ok := r.invoices[id]; ok && inv.OwnerID == ownerID {
		delete(r.invoices, id)
	}
	return nil
}

func (r *RemoteService) List(_ context.Context, f repository.InvoiceFilter) ([]entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Invoice, 0)
	for _, inv := range r.invoices {
		if f.OwnerID != "" && inv.OwnerID != f.OwnerID {
			continue
		}
		if f.From != nil && inv.InvoiceDate.Before(*f.From) {
			continue
		}
		if f.To != nil && inv.InvoiceDate.After(*f.To) {
			continue
		}
		out = append(out, inv.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return []entity.Invoice{}, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *RemoteService) NextSequence(_ context.Context, ownerID, dateKey string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seqErr != nil {
		return 0, r.seqErr
	}
	key := ownerID + "|" + dateKey
	if r.sequences[key] < invoicenumber.MaxSequence {
		r.sequences[key]++
	}
	return r.sequences[key], nil
}
