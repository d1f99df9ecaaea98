package rest

import (
	"net/http"

	"github.com/frahmantamala/hospital-careers/internal/transport"
	"github.com/go-chi/chi"
)

type FileResolver interface {
	Resolve(dir, name string) (string, error)
}

// UploadsHandler serves stored attachments and profile images from the public root.
type UploadsHandler struct {
	*transport.BaseHandler
	Files FileResolver
}

func NewUploadsHandler(baseHandler *transport.BaseHandler, files FileResolver) *UploadsHandler {
	return &UploadsHandler{
		BaseHandler: baseHandler,
		Files:       files,
	}
}

func (h *UploadsHandler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	dir := chi.URLParam(r, "dir")
	name := chi.URLParam(r, "name")

	path, err := h.Files.Resolve(dir, name)
	if err != nil {
		h.Logger.Debug("upload not found", "dir", dir, "name", name)
		h.HandleServiceError(w, err)
		return
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFile(w, r, path)
}
