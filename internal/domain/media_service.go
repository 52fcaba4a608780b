package domain

import (
	"context"
	"encoding/base64"
	"strings"

	"mediavault/internal/models"
	"mediavault/internal/ports"
)

// MediaService owns draft validation and the creation/deletion lifecycle.
// Records are immutable once persisted; there is no update path.
type MediaService struct {
	repo   ports.MediaRepository
	events chan ports.RecordEvent
}

func NewMediaService(repo ports.MediaRepository) *MediaService {
	return &MediaService{
		repo:   repo,
		events: make(chan ports.RecordEvent, 100),
	}
}

func (s *MediaService) Events() <-chan ports.RecordEvent { return s.events }

func (s *MediaService) CreateFromURL(ctx context.Context, kind models.MediaKind, d ports.URLDraft) (*models.MediaRecord, error) {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.URL) == "" {
		return nil, ports.Invalid("title and url are required")
	}
	if d.Duration != nil && *d.Duration < 0 {
		return nil, ports.Invalid("duration must be non-negative")
	}

	rec := &models.MediaRecord{
		Title:           strings.TrimSpace(d.Title),
		Kind:            kind,
		Location:        models.ByURL(d.URL),
		DurationSeconds: d.Duration,
	}

	saved, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.emit(ports.RecordEvent{Action: "created", Record: saved})
	return saved, nil
}

func (s *MediaService) CreateFromData(ctx context.Context, d ports.DataDraft) (*models.MediaRecord, error) {
	if strings.TrimSpace(d.Title) == "" || d.AudioData == "" {
		return nil, ports.Invalid("title and audioData are required")
	}
	if d.Duration != nil && *d.Duration < 0 {
		return nil, ports.Invalid("duration must be non-negative")
	}

	mimeType, payload, err := models.ParseAudioDataURL(d.AudioData)
	if err != nil {
		return nil, ports.Invalid("invalid audioData: %v", err)
	}
	if _, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); err != nil {
		return nil, ports.Invalid("invalid audioData: payload is not base64")
	}

	// A client-supplied mimeType wins over the one in the data URL; the
	// payload size is always computed here, never taken from the request.
	if d.MimeType != "" {
		mimeType = d.MimeType
	}
	if mimeType == "" {
		mimeType = models.DefaultAudioMime
	}

	rec := &models.MediaRecord{
		Title:           strings.TrimSpace(d.Title),
		Kind:            models.KindAudio,
		Location:        models.Embedded(mimeType, payload),
		FileSizeBytes:   models.EmbeddedSize(payload),
		DurationSeconds: d.Duration,
	}

	saved, err := s.repo.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.emit(ports.RecordEvent{Action: "created", Record: saved})
	return saved, nil
}

func (s *MediaService) Get(ctx context.Context, id string) (*models.MediaRecord, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MediaService) ListAll(ctx context.Context) ([]models.MediaRecord, error) {
	return s.repo.ListAll(ctx)
}

func (s *MediaService) ListByKind(ctx context.Context, kind models.MediaKind) ([]models.MediaRecord, error) {
	return s.repo.ListByKind(ctx, kind)
}

func (s *MediaService) Delete(ctx context.Context, id string) (*models.MediaRecord, error) {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.emit(ports.RecordEvent{Action: "deleted", Record: deleted})
	return deleted, nil
}

// emit never blocks a request on a slow feed consumer.
func (s *MediaService) emit(ev ports.RecordEvent) {
	select {
	case s.events <- ev:
	default:
	}
}
