package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo guarda el snapshot del motor de un dueño como JSONB en store_states.
type StateRepo struct {
	q       Querier
	ownerID string
}

// NewStateRepository adaptador ligado a un dueño.
func NewStateRepository(q Querier, ownerID string) *StateRepo {
	return &StateRepo{q: q, ownerID: ownerID}
}

// Load devuelve (nil, nil) si el dueño aún no tiene estado.
func (r *StateRepo) Load(ctx context.Context) (*entity.StoreState, error) {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT state FROM store_states WHERE owner_id = $1`, r.ownerID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load store state: %w", err)
	}
	var st entity.StoreState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode store state: %w", err)
	}
	return &st, nil
}

// Save reemplaza el snapshot del dueño.
func (r *StateRepo) Save(ctx context.Context, state entity.StoreState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode store state: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO store_states (owner_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (owner_id) DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		r.ownerID, raw)
	if err != nil {
		return fmt.Errorf("save store state: %w", err)
	}
	return nil
}
