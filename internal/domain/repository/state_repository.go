package repository

import (
	"context"

	"github.com/jhoicas/invoicer/internal/domain/entity"
)

// StateRepository adaptador de persistencia del estado del motor (load/save snapshot).
// Load devuelve (nil, nil) si aún no hay estado guardado.
type StateRepository interface {
	Load(ctx context.Context) (*entity.StoreState, error)
	Save(ctx context.Context, state entity.StoreState) error
}
