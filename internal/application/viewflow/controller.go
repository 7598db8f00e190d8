// Package viewflow controla el flujo de pantallas home → form → preview → home.
// El borrador vive en el Store, no en la vista: volver atrás nunca lo pierde.
package viewflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
)

// State pantalla visible.
type State string

const (
	StateHome    State = "home"
	StateForm    State = "form"
	StatePreview State = "preview"
)

// Longitudes mínimas de los campos obligatorios del cliente para la vista previa.
const (
	MinCustomerNameLength  = 3
	MinCustomerPhoneLength = 8
)

// Campos reportados por la compuerta de vista previa.
const (
	FieldCustomerName  = "customer.name"
	FieldCustomerPhone = "customer.phone"
	FieldItems         = "items"
)

// InvoiceStore parte del Store que usa el controlador.
type InvoiceStore interface {
	Current() (entity.Invoice, bool)
	InitializeNewInvoice(ctx context.Context) (entity.Invoice, error)
	SaveCompleted(ctx context.Context) (entity.Invoice, error)
	Completed() []entity.Invoice
}

// HomeView listado de completadas; Version cambia con cada guardado completado
// para que el cliente invalide su caché sin recargar todo.
type HomeView struct {
	Invoices []entity.Invoice `json:"invoices"`
	Version  int              `json:"version"`
}

// Controller una instancia por sesión.
type Controller struct {
	store InvoiceStore

	mu      sync.Mutex
	state   State
	version int
}

// New arranca en home.
func New(store InvoiceStore) *Controller {
	return &Controller{store: store, state: StateHome}
}

// State pantalla actual.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// EnterForm muestra el formulario. Sin borrador editable se inicializa uno nuevo.
func (c *Controller) EnterForm(ctx context.Context) (entity.Invoice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inv, ok := c.store.Current()
	if !ok || inv.Status != entity.StatusDraft {
		var err error
		inv, err = c.store.InitializeNewInvoice(ctx)
		if err != nil {
			return entity.Invoice{}, err
		}
	}
	c.state = StateForm
	return inv, nil
}

// EnterPreview solo desde form y con el borrador completo; si no, se rechaza con
// errores por campo envueltos en ErrPreviewBlocked.
func (c *Controller) EnterPreview() (entity.Invoice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateForm {
		return entity.Invoice{}, fmt.Errorf("%w: vista previa solo desde el formulario (actual: %s)", domain.ErrConflict, c.state)
	}
	inv, ok := c.store.Current()
	if !ok {
		return entity.Invoice{}, domain.ErrNoDraft
	}
	if errs := CheckPreview(inv); len(errs) > 0 {
		return entity.Invoice{}, &PreviewError{Fields: errs}
	}
	c.state = StatePreview
	return inv, nil
}

// BackToForm vuelve de preview a form sin tocar el borrador.
func (c *Controller) BackToForm() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StatePreview {
		c.state = StateForm
	}
	return c.state
}

// GoHome siempre permitido; el borrador se conserva en el Store.
func (c *Controller) GoHome() HomeView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateHome
	return c.homeLocked()
}

// CompleteAndGoHome guarda desde preview y vuelve a home con el listado actualizado.
// El borrador se revalida al guardar: si se editó en preview y ya no pasa la compuerta,
// vuelve a form sin guardar. Un fallo de encolado también vuelve a home: la factura ya
// quedó guardada localmente.
func (c *Controller) CompleteAndGoHome(ctx context.Context) (HomeView, entity.Invoice, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePreview {
		return HomeView{}, entity.Invoice{}, fmt.Errorf("%w: guardar solo desde la vista previa (actual: %s)", domain.ErrConflict, c.state)
	}
	current, ok := c.store.Current()
	if !ok {
		c.state = StateForm
		return HomeView{}, entity.Invoice{}, domain.ErrNoDraft
	}
	if errs := CheckPreview(current); len(errs) > 0 {
		c.state = StateForm
		return HomeView{}, entity.Invoice{}, &PreviewError{Fields: errs}
	}
	inv, err := c.store.SaveCompleted(ctx)
	if err != nil && !errors.Is(err, domain.ErrEnqueueFailed) {
		return HomeView{}, entity.Invoice{}, err
	}
	c.version++
	c.state = StateHome
	return c.homeLocked(), inv, err
}

// Home listado fresco de completadas.
func (c *Controller) Home() HomeView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.homeLocked()
}

// Invalidate incrementa la versión tras cambios externos (borrados, merge remoto).
func (c *Controller) Invalidate() {
	c.mu.Lock()
	c.version++
	c.mu.Unlock()
}

func (c *Controller) homeLocked() HomeView {
	return HomeView{Invoices: c.store.Completed(), Version: c.version}
}

// CheckPreview valida que el borrador esté listo para vista previa.
func CheckPreview(inv entity.Invoice) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if len(inv.Items) == 0 {
		errs.Add(FieldItems, "agrega al menos un ítem")
	}
	if utf8.RuneCountInString(strings.TrimSpace(inv.Customer.Name)) < MinCustomerNameLength {
		errs.Add(FieldCustomerName, fmt.Sprintf("el nombre debe tener al menos %d caracteres", MinCustomerNameLength))
	}
	if utf8.RuneCountInString(strings.TrimSpace(inv.Customer.Phone)) < MinCustomerPhoneLength {
		errs.Add(FieldCustomerPhone, fmt.Sprintf("el teléfono debe tener al menos %d caracteres", MinCustomerPhoneLength))
	}
	return errs
}

// PreviewError rechazo de la compuerta con mensajes por campo.
type PreviewError struct {
	Fields domain.ValidationErrors
}

func (e *PreviewError) Error() string {
	return domain.ErrPreviewBlocked.Error() + ": " + e.Fields.Error()
}

// Is permite errors.Is(err, domain.ErrPreviewBlocked).
func (e *PreviewError) Is(target error) bool { return target == domain.ErrPreviewBlocked }
