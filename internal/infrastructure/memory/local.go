package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
)

var (
	_ repository.StateRepository  = (*StateRepo)(nil)
	_ repository.OutboxRepository = (*OutboxRepo)(nil)
)

// StateRepo snapshot del Store en memoria. SaveErr simula un disco lleno.
type StateRepo struct {
	mu      sync.Mutex
	state   *entity.StoreState
	saves   int
	SaveErr error
}

func NewStateRepo() *StateRepo { return &StateRepo{} }

func (r *StateRepo) Load(context.Context) (*entity.StoreState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return nil, nil
	}
	st := r.state.Clone()
	return &st, nil
}

func (r *StateRepo) Save(_ context.Context, st entity.StoreState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	c := st.Clone()
	r.state = &c
	r.saves++
	return nil
}

// Saves número de guardados exitosos.
func (r *StateRepo) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

// OutboxRepo cola durable en memoria.
type OutboxRepo struct {
	mu      sync.Mutex
	ops     []entity.SyncOperation
	SaveErr error
}

func NewOutboxRepo() *OutboxRepo { return &OutboxRepo{} }

// SetSaveErr cambia el error de guardado de forma segura entre goroutines.
func (r *OutboxRepo) SetSaveErr(err error) {
	r.mu.Lock()
	r.SaveErr = err
	r.mu.Unlock()
}

func (r *OutboxRepo) Load(context.Context) ([]entity.SyncOperation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.SyncOperation(nil), r.ops...), nil
}

func (r *OutboxRepo) Save(_ context.Context, ops []entity.SyncOperation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.ops = append([]entity.SyncOperation(nil), ops...)
	return nil
}
