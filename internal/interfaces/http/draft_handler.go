package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoicer/internal/application/billing"
	"github.com/jhoicas/invoicer/internal/application/dto"
	"github.com/jhoicas/invoicer/internal/application/invoicing"
	"github.com/jhoicas/invoicer/internal/application/session"
	"github.com/jhoicas/invoicer/internal/application/viewflow"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/pricing"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// DraftHandler edición del borrador de la sesión del dueño (protegido).
type DraftHandler struct {
	sessions  *session.Manager
	customers *billing.CustomerUseCase
	log       *logger.Logger
}

// NewDraftHandler construye el handler.
func NewDraftHandler(sessions *session.Manager, customers *billing.CustomerUseCase, log *logger.Logger) *DraftHandler {
	return &DraftHandler{sessions: sessions, customers: customers, log: log}
}

// State godoc
// @Summary      Estado de la sesión del dueño
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StateResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/state [get]
func (h *DraftHandler) State(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.StateResponse{State: s.Store.State(), View: string(s.View.State()), Plan: GetPlan(c)})
}

// Create godoc
// @Summary      Nuevo borrador
// @Description  Descarta el borrador actual y arranca uno nuevo con el siguiente consecutivo del día.
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.DraftResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      402  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/draft [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	inv, err := s.Store.InitializeNewInvoice(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DraftResponse{Invoice: inv})
}

// Update godoc
// @Summary      Actualizar campos del borrador
// @Tags         draft
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  invoicing.InvoicePatch  true  "Campos a cambiar (los ausentes no se tocan)"
// @Success      200  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/draft [patch]
func (h *DraftHandler) Update(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in invoicing.InvoicePatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := s.Store.UpdateInvoiceFields(in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DraftResponse{Invoice: inv})
}

// SetMode godoc
// @Summary      Cambiar el modo del borrador
// @Description  Solo se permite mientras el borrador no tenga ítems.
// @Tags         draft
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetModeRequest  true  "regular o buyback"
// @Success      200  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/draft/mode [put]
func (h *DraftHandler) SetMode(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.SetModeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := s.Store.SetMode(in.Mode)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DraftResponse{Invoice: inv})
}

// AddItem godoc
// @Summary      Agregar ítem al borrador
// @Tags         draft
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  pricing.ItemInput  true  "mode regular (quantity, price) o buyback (gram, buyback_rate)"
// @Success      201  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/draft/items [post]
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in pricing.ItemInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := s.Store.AddItem(in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	inv, _ := s.Store.Current()
	return c.Status(fiber.StatusCreated).JSON(dto.DraftResponse{Invoice: inv, ItemID: item.ItemID()})
}

// UpdateItem godoc
// @Summary      Modificar ítem del borrador
// @Tags         draft
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Param        body  body  pricing.ItemPatch  true  "Campos del mismo modo del ítem"
// @Success      200  {object}  dto.DraftResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/draft/items/{id} [patch]
func (h *DraftHandler) UpdateItem(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in pricing.ItemPatch
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	inv, err := s.Store.UpdateItem(c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DraftResponse{Invoice: inv})
}

// RemoveItem godoc
// @Summary      Quitar ítem del borrador
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/draft/items/{id} [delete]
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	inv, err := s.Store.RemoveItem(c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DraftResponse{Invoice: inv})
}

// SetCustomer godoc
// @Summary      Asignar cliente al borrador
// @Description  Copia los datos del cliente al borrador; cambios posteriores del cliente no afectan la factura.
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Param        customerId  path  string  true  "ID del cliente (UUID)"
// @Success      200  {object}  dto.DraftResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/draft/customer/{customerId} [put]
func (h *DraftHandler) SetCustomer(c *fiber.Ctx) error {
	owner := GetUserID(c)
	s, err := h.sessions.Get(c.Context(), owner)
	if err != nil {
		return writeError(c, h.log, err)
	}
	snap, err := h.customers.Snapshot(c.Context(), owner, c.Params("customerId"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	inv, err := s.Store.UpdateInvoiceFields(invoicing.InvoicePatch{Customer: &snap})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DraftResponse{Invoice: inv})
}

// Complete godoc
// @Summary      Completar borrador
// @Description  Guarda y encola. 202 con aviso si solo quedó guardada localmente.
// @Tags         draft
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SaveResponse
// @Success      202  {object}  dto.SaveResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/draft/complete [post]
func (h *DraftHandler) Complete(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	current, ok := s.Store.Current()
	if !ok {
		return writeError(c, h.log, domain.ErrNoDraft)
	}
	// Misma compuerta que la vista previa: no se completa un borrador incompleto.
	if errs := viewflow.CheckPreview(current); len(errs) > 0 {
		return writeError(c, h.log, &viewflow.PreviewError{Fields: errs})
	}
	inv, err := s.Store.SaveCompleted(c.Context())
	if err != nil && !errors.Is(err, domain.ErrEnqueueFailed) {
		return writeError(c, h.log, err)
	}
	s.View.Invalidate()
	if err != nil {
		return c.Status(fiber.StatusAccepted).JSON(dto.SaveResponse{Invoice: &inv, Queued: false, Warning: enqueueWarning})
	}
	return c.JSON(dto.SaveResponse{Invoice: &inv, Queued: true})
}
