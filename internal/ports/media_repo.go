package ports

import (
	"context"

	"mediavault/internal/models"
)

// MediaRepository is durable CRUD over media records. The store assigns id
// and upload time on insert; every operation is a single atomic statement.
type MediaRepository interface {
	Insert(ctx context.Context, rec *models.MediaRecord) (*models.MediaRecord, error)
	FindByID(ctx context.Context, id string) (*models.MediaRecord, error)

	// ListByKind and ListAll return newest first. An empty slice is a valid
	// result, not an error.
	ListByKind(ctx context.Context, kind models.MediaKind) ([]models.MediaRecord, error)
	ListAll(ctx context.Context) ([]models.MediaRecord, error)

	// DeleteByID returns the deleted record for confirmation, or ErrNotFound.
	DeleteByID(ctx context.Context, id string) (*models.MediaRecord, error)
}
