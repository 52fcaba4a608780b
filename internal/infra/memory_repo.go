package infra

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"mediavault/internal/models"
	"mediavault/internal/ports"
)

// MemoryMediaRepo keeps records in process memory with the same contract
// as the Postgres repo. The handler and service tests run against it.
type MemoryMediaRepo struct {
	mu      sync.RWMutex
	records []models.MediaRecord // insertion order, oldest first
}

func NewMemoryMediaRepo() *MemoryMediaRepo {
	return &MemoryMediaRepo{}
}

func (r *MemoryMediaRepo) Insert(_ context.Context, rec *models.MediaRecord) (*models.MediaRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec.ID = uuid.NewString()
	rec.UploadedAt = time.Now().UTC()
	r.records = append(r.records, *rec)
	return rec, nil
}

func (r *MemoryMediaRepo) FindByID(_ context.Context, id string) (*models.MediaRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *MemoryMediaRepo) ListByKind(_ context.Context, kind models.MediaKind) ([]models.MediaRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.MediaRecord
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].Kind == kind {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *MemoryMediaRepo) ListAll(_ context.Context) ([]models.MediaRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.MediaRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

func (r *MemoryMediaRepo) DeleteByID(_ context.Context, id string) (*models.MediaRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			rec := r.records[i]
			r.records = append(r.records[:i], r.records[i+1:]...)
			return &rec, nil
		}
	}
	return nil, ports.ErrNotFound
}

// Len reports the number of stored records; handy for asserting that a
// rejected draft persisted nothing.
func (r *MemoryMediaRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
