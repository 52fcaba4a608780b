package infra

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mediavault/internal/models"
	"mediavault/internal/ports"
)

type PostgresMediaRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresMediaRepo(pool *pgxpool.Pool) ports.MediaRepository {
	return &PostgresMediaRepo{pool: pool}
}

const recordColumns = `id, title, media_kind, storage_kind, url, mime_type, payload, file_size_bytes, duration_seconds, uploaded_at`

func (r *PostgresMediaRepo) Insert(ctx context.Context, rec *models.MediaRecord) (*models.MediaRecord, error) {
	query := `
		INSERT INTO media_record
			(id, title, media_kind, storage_kind, url, mime_type, payload, file_size_bytes, duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING uploaded_at
	`

	rec.ID = uuid.NewString()

	var url, mimeType, payload *string
	var size *int64
	switch rec.Location.Storage {
	case models.StorageByURL:
		url = &rec.Location.URL
	case models.StorageEmbedded:
		mimeType = &rec.Location.MimeType
		payload = &rec.Location.Payload
		size = &rec.FileSizeBytes
	}

	row := r.pool.QueryRow(ctx, query,
		rec.ID, rec.Title, rec.Kind, rec.Location.Storage,
		url, mimeType, payload, size, rec.DurationSeconds,
	)
	if err := row.Scan(&rec.UploadedAt); err != nil {
		return nil, &ports.StoreError{Op: "insert media record", Err: err}
	}
	return rec, nil
}

func (r *PostgresMediaRepo) FindByID(ctx context.Context, id string) (*models.MediaRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ports.ErrNotFound
	}

	row := r.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM media_record WHERE id = $1`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, &ports.StoreError{Op: "find media record", Err: err}
	}
	return rec, nil
}

func (r *PostgresMediaRepo) ListByKind(ctx context.Context, kind models.MediaKind) ([]models.MediaRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recordColumns+`
		 FROM media_record
		 WHERE media_kind = $1
		 ORDER BY uploaded_at DESC, id`, kind)
	if err != nil {
		return nil, &ports.StoreError{Op: "list media records by kind", Err: err}
	}
	return collectRecords(rows)
}

func (r *PostgresMediaRepo) ListAll(ctx context.Context) ([]models.MediaRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recordColumns+`
		 FROM media_record
		 ORDER BY uploaded_at DESC, id`)
	if err != nil {
		return nil, &ports.StoreError{Op: "list media records", Err: err}
	}
	return collectRecords(rows)
}

func (r *PostgresMediaRepo) DeleteByID(ctx context.Context, id string) (*models.MediaRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ports.ErrNotFound
	}

	row := r.pool.QueryRow(ctx,
		`DELETE FROM media_record WHERE id = $1 RETURNING `+recordColumns, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, &ports.StoreError{Op: "delete media record", Err: err}
	}
	return rec, nil
}

func scanRecord(row pgx.Row) (*models.MediaRecord, error) {
	var (
		rec      models.MediaRecord
		storage  models.StorageKind
		url      *string
		mimeType *string
		payload  *string
		size     *int64
	)

	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Kind, &storage,
		&url, &mimeType, &payload, &size,
		&rec.DurationSeconds, &rec.UploadedAt,
	)
	if err != nil {
		return nil, err
	}

	switch storage {
	case models.StorageEmbedded:
		rec.Location = models.Embedded(deref(mimeType), deref(payload))
		if size != nil {
			rec.FileSizeBytes = *size
		}
	default:
		rec.Location = models.ByURL(deref(url))
	}
	return &rec, nil
}

func collectRecords(rows pgx.Rows) ([]models.MediaRecord, error) {
	defer rows.Close()

	var out []models.MediaRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, &ports.StoreError{Op: "scan media record", Err: err}
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &ports.StoreError{Op: "read media records", Err: err}
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
