package delivery

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the media API. Method/path pairs are frozen: the
// frontend and existing callers depend on them exactly as-is.
func RegisterRoutes(r chi.Router, h *MediaHandler) {
	r.Post("/video", h.CreateVideo)
	r.Post("/audio", h.CreateAudio)
	r.Post("/audio-file", h.CreateAudioFile)

	r.Get("/url", h.ListVideos)
	r.Get("/audio", h.ListAudio)
	r.Get("/all", h.ListAll)
	r.Get("/type/{mediaType}", h.ListByType)
	r.Get("/audio-stream/{id}", h.Stream)

	r.Delete("/{id}", h.Delete)
}
