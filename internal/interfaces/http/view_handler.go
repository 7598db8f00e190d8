package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoicer/internal/application/dto"
	"github.com/jhoicas/invoicer/internal/application/session"
	"github.com/jhoicas/invoicer/internal/application/viewflow"
	"github.com/jhoicas/invoicer/internal/domain"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// ViewHandler navegación home → form → preview de la sesión del dueño.
type ViewHandler struct {
	sessions *session.Manager
	log      *logger.Logger
}

// NewViewHandler construye el handler.
func NewViewHandler(sessions *session.Manager, log *logger.Logger) *ViewHandler {
	return &ViewHandler{sessions: sessions, log: log}
}

// Get GET /api/view
func (h *ViewHandler) Get(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	state := s.View.State()
	if state == viewflow.StateHome {
		return c.JSON(homeResponse(s.View.Home()))
	}
	resp := dto.ViewResponse{State: string(state)}
	if inv, ok := s.Store.Current(); ok {
		resp.Invoice = &inv
	}
	return c.JSON(resp)
}

// Form POST /api/view/form
func (h *ViewHandler) Form(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	inv, err := s.View.EnterForm(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ViewResponse{State: string(viewflow.StateForm), Invoice: &inv})
}

// Preview POST /api/view/preview
func (h *ViewHandler) Preview(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	inv, err := s.View.EnterPreview()
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ViewResponse{State: string(viewflow.StatePreview), Invoice: &inv})
}

// Back POST /api/view/back: de preview al formulario.
func (h *ViewHandler) Back(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	resp := dto.ViewResponse{State: string(s.View.BackToForm())}
	if inv, ok := s.Store.Current(); ok {
		resp.Invoice = &inv
	}
	return c.JSON(resp)
}

// Home POST /api/view/home
func (h *ViewHandler) Home(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(homeResponse(s.View.GoHome()))
}

// Complete POST /api/view/complete: guarda desde preview y vuelve a home.
func (h *ViewHandler) Complete(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	home, inv, err := s.View.CompleteAndGoHome(c.Context())
	if err != nil && !errors.Is(err, domain.ErrEnqueueFailed) {
		return writeError(c, h.log, err)
	}
	resp := homeResponse(home)
	resp.Invoice = &inv
	if err != nil {
		resp.Warning = enqueueWarning
		return c.Status(fiber.StatusAccepted).JSON(resp)
	}
	return c.JSON(resp)
}

func homeResponse(home viewflow.HomeView) dto.ViewResponse {
	return dto.ViewResponse{
		State: string(viewflow.StateHome),
		Home:  &dto.HomeResponse{Invoices: home.Invoices, Version: home.Version},
	}
}
