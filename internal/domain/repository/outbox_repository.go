package repository

import (
	"context"

	"github.com/jhoicas/invoicer/internal/domain/entity"
)

// OutboxRepository almacenamiento durable y ordenado de la cola de sincronización.
// Save reemplaza la cola completa; el orden del slice es el orden de envío.
type OutboxRepository interface {
	Load(ctx context.Context) ([]entity.SyncOperation, error)
	Save(ctx context.Context, ops []entity.SyncOperation) error
}
