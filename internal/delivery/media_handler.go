package delivery

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"

	"mediavault/internal/models"
	"mediavault/internal/ports"
)

type MediaHandler struct {
	media    ports.MediaService
	log      *logger.ZapLogger
	basePath string
}

func NewMediaHandler(media ports.MediaService, log *logger.ZapLogger, basePath string) *MediaHandler {
	return &MediaHandler{
		media:    media,
		log:      log,
		basePath: strings.TrimRight(basePath, "/"),
	}
}

// recordView is the JSON shape of a record. Embedded payloads never appear
// in it: location is masked to the stream path and the size is reported
// instead.
type recordView struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	MediaKind       string    `json:"mediaKind"`
	StorageKind     string    `json:"storageKind"`
	Location        string    `json:"location"`
	MimeType        string    `json:"mimeType,omitempty"`
	FileSizeBytes   int64     `json:"fileSizeBytes,omitempty"`
	HasBase64Data   bool      `json:"hasBase64Data,omitempty"`
	DurationSeconds *float64  `json:"durationSeconds,omitempty"`
	UploadedAt      time.Time `json:"uploadedAt"`
}

func (h *MediaHandler) view(rec *models.MediaRecord) recordView {
	v := recordView{
		ID:              rec.ID,
		Title:           rec.Title,
		MediaKind:       string(rec.Kind),
		StorageKind:     string(rec.Location.Storage),
		DurationSeconds: rec.DurationSeconds,
		UploadedAt:      rec.UploadedAt,
	}

	switch rec.Location.Storage {
	case models.StorageEmbedded:
		v.Location = h.basePath + "/audio-stream/" + rec.ID
		v.MimeType = rec.Location.MimeType
		v.FileSizeBytes = rec.FileSizeBytes
		v.HasBase64Data = true
	default:
		v.Location = rec.Location.URL
	}
	return v
}

func (h *MediaHandler) views(recs []models.MediaRecord) []recordView {
	out := make([]recordView, 0, len(recs))
	for i := range recs {
		out = append(out, h.view(&recs[i]))
	}
	return out
}

type urlUpload struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Duration *float64 `json:"duration"`
}

type dataUpload struct {
	Title     string   `json:"title"`
	AudioData string   `json:"audioData"`
	MimeType  string   `json:"mimeType"`
	Duration  *float64 `json:"duration"`
}

// POST /video
func (h *MediaHandler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	h.createFromURL(w, r, models.KindVideo)
}

// POST /audio
func (h *MediaHandler) CreateAudio(w http.ResponseWriter, r *http.Request) {
	h.createFromURL(w, r, models.KindAudio)
}

func (h *MediaHandler) createFromURL(w http.ResponseWriter, r *http.Request, kind models.MediaKind) {
	var req urlUpload
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.media.CreateFromURL(r.Context(), kind, ports.URLDraft{
		Title:    req.Title,
		URL:      req.URL,
		Duration: req.Duration,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "media record created",
		Fields: map[string]any{
			"id":   rec.ID,
			"kind": rec.Kind,
		},
	})

	writeJSON(w, http.StatusCreated, h.view(rec))
}

// POST /audio-file
func (h *MediaHandler) CreateAudioFile(w http.ResponseWriter, r *http.Request) {
	var req dataUpload
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.media.CreateFromData(r.Context(), ports.DataDraft{
		Title:     req.Title,
		AudioData: req.AudioData,
		MimeType:  req.MimeType,
		Duration:  req.Duration,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "embedded audio record created",
		Fields: map[string]any{
			"id":    rec.ID,
			"bytes": rec.FileSizeBytes,
		},
	})

	writeJSON(w, http.StatusCreated, h.view(rec))
}

// GET /url
func (h *MediaHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	recs, err := h.media.ListByKind(r.Context(), models.KindVideo)
	h.respondList(w, recs, err, "no video records found")
}

// GET /audio
func (h *MediaHandler) ListAudio(w http.ResponseWriter, r *http.Request) {
	recs, err := h.media.ListByKind(r.Context(), models.KindAudio)
	h.respondList(w, recs, err, "no audio records found")
}

// GET /all
func (h *MediaHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	recs, err := h.media.ListAll(r.Context())
	h.respondList(w, recs, err, "no media records found")
}

// GET /type/{mediaType}
func (h *MediaHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	kind, ok := models.ParseMediaKind(chi.URLParam(r, "mediaType"))
	if !ok {
		writeMessage(w, http.StatusBadRequest, "invalid media type, use 'video' or 'audio'")
		return
	}

	recs, err := h.media.ListByKind(r.Context(), kind)
	h.respondList(w, recs, err, "no "+string(kind)+" records found")
}

// An empty list is a 404, not a 200 with []. Long-standing contract with the
// frontend.
func (h *MediaHandler) respondList(w http.ResponseWriter, recs []models.MediaRecord, err error, emptyMsg string) {
	if err != nil {
		writeError(w, err)
		return
	}
	if len(recs) == 0 {
		writeMessage(w, http.StatusNotFound, emptyMsg)
		return
	}
	writeJSON(w, http.StatusOK, h.views(recs))
}

// GET /audio-stream/{id}
func (h *MediaHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.media.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if rec.Kind != models.KindAudio {
		writeMessage(w, http.StatusNotFound, "media record not found")
		return
	}

	if rec.Location.Storage == models.StorageByURL {
		http.Redirect(w, r, rec.Location.URL, http.StatusFound)
		return
	}

	data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(rec.Location.Payload, "="))
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "error",
			Message: "stored payload failed to decode",
			Fields:  map[string]any{"id": rec.ID},
			Error:   err,
		})
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", rec.Location.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// DELETE /{id}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.media.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	h.log.Log(logger.LogEntry{
		Level:   "info",
		Message: "media record deleted",
		Fields:  map[string]any{"id": rec.ID},
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "media record deleted",
		"data":    h.view(rec),
	})
}
