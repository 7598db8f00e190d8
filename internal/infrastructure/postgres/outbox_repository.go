package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
)

var _ repository.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo cola de sincronización durable por dueño. El orden lo fija la columna position.
type OutboxRepo struct {
	q       Querier
	tx      *TxRunner
	ownerID string
}

// NewOutboxRepository adaptador ligado a un dueño.
func NewOutboxRepository(db interface {
	Querier
	TxBeginner
}, ownerID string) *OutboxRepo {
	return &OutboxRepo{q: db, tx: NewTxRunner(db), ownerID: ownerID}
}

// Load devuelve las operaciones en orden de envío.
func (r *OutboxRepo) Load(ctx context.Context) ([]entity.SyncOperation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, owner_id, action, entity_type, entity_id, data, enqueued_at,
			attempts, next_attempt_at, last_error, blocked
		FROM sync_outbox WHERE owner_id = $1 ORDER BY position`, r.ownerID)
	if err != nil {
		return nil, fmt.Errorf("load outbox: %w", err)
	}
	defer rows.Close()

	ops := make([]entity.SyncOperation, 0)
	for rows.Next() {
		var op entity.SyncOperation
		var action string
		var data []byte
		var lastError *string
		if err := rows.Scan(&op.ID, &op.OwnerID, &action, &op.EntityType, &op.EntityID, &data,
			&op.EnqueuedAt, &op.Attempts, &op.NextAttemptAt, &lastError, &op.Blocked); err != nil {
			return nil, fmt.Errorf("scan outbox: %w", err)
		}
		op.Action = entity.SyncAction(action)
		op.Data = data
		op.LastError = derefStr(lastError)
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// Save reemplaza la cola completa del dueño en una transacción.
func (r *OutboxRepo) Save(ctx context.Context, ops []entity.SyncOperation) error {
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM sync_outbox WHERE owner_id = $1`, r.ownerID); err != nil {
			return fmt.Errorf("clear outbox: %w", err)
		}
		if len(ops) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for pos, op := range ops {
			var data []byte
			if len(op.Data) > 0 {
				data = op.Data
			}
			batch.Queue(`
				INSERT INTO sync_outbox (id, owner_id, position, action, entity_type, entity_id, data,
					enqueued_at, attempts, next_attempt_at, last_error, blocked)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				op.ID, r.ownerID, pos, string(op.Action), op.EntityType, op.EntityID, data,
				op.EnqueuedAt, op.Attempts, op.NextAttemptAt, nullIfEmpty(op.LastError), op.Blocked)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("insert outbox: %w", err)
		}
		return nil
	})
}
