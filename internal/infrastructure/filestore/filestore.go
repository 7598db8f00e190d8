// Package filestore persiste el estado del motor y su cola de sincronización en archivos JSON.
// Cada escritura va a un temporal en el mismo directorio y se renombra sobre el destino,
// de modo que un lector nunca ve un archivo a medio escribir.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/invoicer/internal/domain/entity"
	"github.com/jhoicas/invoicer/internal/domain/repository"
)

const (
	stateFile  = "state.json"
	outboxFile = "outbox.json"
)

var (
	_ repository.StateRepository  = (*StateRepo)(nil)
	_ repository.OutboxRepository = (*OutboxRepo)(nil)
)

// OwnerDir directorio de datos de un dueño dentro de root.
func OwnerDir(root, ownerID string) string {
	return filepath.Join(root, safeName(ownerID))
}

// StateRepo snapshot del motor en <dir>/state.json.
type StateRepo struct {
	mu   sync.Mutex
	path string
}

// NewStateRepository repositorio de estado en dir (se crea al primer guardado).
func NewStateRepository(dir string) *StateRepo {
	return &StateRepo{path: filepath.Join(dir, stateFile)}
}

// Load devuelve (nil, nil) si el archivo no existe.
func (r *StateRepo) Load(context.Context) (*entity.StoreState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var st entity.StoreState
	found, err := readJSON(r.path, &st)
	if err != nil || !found {
		return nil, err
	}
	return &st, nil
}

func (r *StateRepo) Save(_ context.Context, state entity.StoreState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return writeJSON(r.path, state)
}

// OutboxRepo cola de sincronización en <dir>/outbox.json; el orden del arreglo es el de envío.
type OutboxRepo struct {
	mu   sync.Mutex
	path string
}

// NewOutboxRepository repositorio de la cola en dir.
func NewOutboxRepository(dir string) *OutboxRepo {
	return &OutboxRepo{path: filepath.Join(dir, outboxFile)}
}

func (r *OutboxRepo) Load(context.Context) ([]entity.SyncOperation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make([]entity.SyncOperation, 0)
	if _, err := readJSON(r.path, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}

func (r *OutboxRepo) Save(_ context.Context, ops []entity.SyncOperation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ops == nil {
		ops = []entity.SyncOperation{}
	}
	return writeJSON(r.path, ops)
}

func readJSON(path string, v any) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op tras el rename

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}

// safeName deja solo caracteres seguros para un nombre de directorio.
func safeName(s string) string {
	if s == "" {
		return "_anonymous"
	}
	out := []rune(s)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}
