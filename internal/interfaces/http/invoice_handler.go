package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoicer/internal/application/billing"
	"github.com/jhoicas/invoicer/internal/application/dto"
	"github.com/jhoicas/invoicer/internal/application/session"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// InvoiceHandler facturas completadas de la sesión del dueño (protegido).
type InvoiceHandler struct {
	sessions *session.Manager
	export   *billing.ExportUseCase
	log      *logger.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(sessions *session.Manager, export *billing.ExportUseCase, log *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{sessions: sessions, export: export, log: log}
}

// List godoc
// @Summary      Listar facturas completadas
// @Description  Con refresh se consulta primero el servicio remoto; si no responde se listan los datos locales.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        limit    query  int   false  "Tamaño de página (default 20)"
// @Param        offset   query  int   false  "Desplazamiento"
// @Param        refresh  query  bool  false  "Consultar primero el servicio remoto"
// @Success      200  {object}  dto.InvoiceListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	owner := GetUserID(c)
	s, err := h.sessions.Get(c.Context(), owner)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if c.QueryBool("refresh") {
		if _, err := h.sessions.Refresh(c.Context(), owner, repository.InvoiceFilter{}); err != nil {
			h.log.Warn().Err(err).Str("owner_id", owner).Msg("refresco remoto fallido, se listan datos locales")
		}
	}
	page := dto.PageRequest{}
	page.Limit, _ = strconv.Atoi(c.Query("limit", "20"))
	page.Offset, _ = strconv.Atoi(c.Query("offset", "0"))
	page.DefaultPage()

	all := s.Store.Completed()
	return c.JSON(dto.InvoiceListResponse{
		Items: paginate(all, page),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(all)},
	})
}

// Edit godoc
// @Summary      Editar factura completada
// @Description  Copia la factura al borrador y abre el formulario. Guardarla de nuevo actualiza la misma factura.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.ViewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/edit [post]
func (h *InvoiceHandler) Edit(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	if _, ok := s.Store.LoadCompleted(c.Params("id")); !ok {
		return writeError(c, h.log, domain.ErrNotFound)
	}
	inv, err := s.View.EnterForm(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ViewResponse{State: string(s.View.State()), Invoice: &inv})
}

// Delete godoc
// @Summary      Eliminar factura
// @Description  Borra localmente de inmediato y encola el borrado remoto.
// @Tags         invoices
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {object}  dto.SaveResponse
// @Success      202  {object}  dto.SaveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	err = s.Store.DeleteCompleted(c.Context(), c.Params("id"))
	if err != nil && !errors.Is(err, domain.ErrEnqueueFailed) {
		return writeError(c, h.log, err)
	}
	s.View.Invalidate()
	if err != nil {
		return c.Status(fiber.StatusAccepted).JSON(dto.SaveResponse{Queued: false, Warning: enqueueWarning})
	}
	return c.JSON(dto.SaveResponse{Queued: true})
}

// PDF godoc
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la factura"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	data, name, err := h.export.ExportPDF(c.Context(), s.Store, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(data)
}

func paginate(list []entity.Invoice, page dto.PageRequest) []entity.Invoice {
	if page.Offset >= len(list) {
		return []entity.Invoice{}
	}
	end := min(page.Offset+page.Limit, len(list))
	return list[page.Offset:end]
}
