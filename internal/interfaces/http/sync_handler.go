package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/invoicer/internal/application/dto"
	"github.com/jhoicas/invoicer/internal/application/session"
	"github.com/jhoicas/invoicer/pkg/logger"
)

// SyncHandler estado y control de la cola de sincronización del dueño.
type SyncHandler struct {
	sessions *session.Manager
	log      *logger.Logger
}

// NewSyncHandler construye el handler.
func NewSyncHandler(sessions *session.Manager, log *logger.Logger) *SyncHandler {
	return &SyncHandler{sessions: sessions, log: log}
}

// Status godoc
// @Summary      Estado de la cola de sincronización
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncStatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sync [get]
func (h *SyncHandler) Status(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	ops := s.Queue.Snapshot()
	resp := dto.SyncStatusResponse{
		Pending:    s.Queue.Pending(),
		Queued:     len(ops),
		Offline:    s.Queue.Offline(),
		Operations: make([]dto.SyncOperationSummary, 0, len(ops)),
		Notices:    s.Store.State().Notices,
	}
	for _, op := range ops {
		resp.Operations = append(resp.Operations, dto.SyncOperationSummary{
			ID:          op.ID,
			Action:      string(op.Action),
			EntityID:    op.EntityID,
			Attempts:    op.Attempts,
			Blocked:     op.Blocked,
			LastError:   op.LastError,
			NextAttempt: op.NextAttemptAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(resp)
}

// Drain godoc
// @Summary      Drenar la cola ahora
// @Description  Una pasada de envío inmediata.
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DrainResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sync/drain [post]
func (h *SyncHandler) Drain(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	res, err := s.Queue.Drain(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.DrainResponse{Delivered: res.Delivered, Failed: res.Failed, Blocked: res.Blocked, Remaining: res.Remaining})
}

// Retry godoc
// @Summary      Reintentar operaciones bloqueadas
// @Description  Desbloquea los rechazos terminales, por ejemplo tras mejorar el plan.
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RetryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sync/retry [post]
func (h *SyncHandler) Retry(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	n, err := s.Queue.RetryBlocked(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.RetryResponse{Unblocked: n})
}

// ClearNotices godoc
// @Summary      Descartar avisos de sincronización
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      204  "No Content"
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sync/notices [delete]
func (h *SyncHandler) ClearNotices(c *fiber.Ctx) error {
	s, err := h.sessions.Get(c.Context(), GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	s.Store.ClearNotices()
	return c.SendStatus(fiber.StatusNoContent)
}
