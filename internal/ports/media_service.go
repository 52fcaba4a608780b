package ports

import (
	"context"

	"mediavault/internal/models"
)

// URLDraft is the {title, url, duration?} creation shape.
type URLDraft struct {
	Title    string
	URL      string
	Duration *float64
}

// DataDraft is the {title, audioData, mimeType?, duration?} creation shape.
// AudioData carries the full data:audio/...;base64,... string.
type DataDraft struct {
	Title     string
	AudioData string
	MimeType  string
	Duration  *float64
}

type MediaService interface {
	CreateFromURL(ctx context.Context, kind models.MediaKind, d URLDraft) (*models.MediaRecord, error)
	CreateFromData(ctx context.Context, d DataDraft) (*models.MediaRecord, error)
	Get(ctx context.Context, id string) (*models.MediaRecord, error)
	ListAll(ctx context.Context) ([]models.MediaRecord, error)
	ListByKind(ctx context.Context, kind models.MediaKind) ([]models.MediaRecord, error)
	Delete(ctx context.Context, id string) (*models.MediaRecord, error)
}

type RecordEvent struct {
	Action string // "created" or "deleted"
	Record *models.MediaRecord
}
