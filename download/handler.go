// Package download serves files from disks that cannot issue temporary URLs.
package download

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	fileoutput "github.com/shoraid/go-fileoutput"
)

// Handler streams a file identified by the disk and base64 path query parameters.
//
//	GET /filament-fileoutput/download?disk=<alias>&path=<base64>
//
// Returns:
//   - 200 with the file bytes as an attachment
//   - 404 when a parameter is missing or malformed, the disk is unknown or the file does not exist
//   - 500 when the disk fails
type Handler struct {
	storage fileoutput.Manager
}

// NewHandler creates a download handler over storage.
func NewHandler(storage fileoutput.Manager) *Handler {
	return &Handler{storage: storage}
}

// Mount registers the handler on r at fileoutput.DefaultDownloadRoute.
func Mount(r chi.Router, storage fileoutput.Manager) {
	r.Method(http.MethodGet, fileoutput.DefaultDownloadRoute, NewHandler(storage))
}

// Routes returns a router serving the handler at its root, for use with chi's Mount.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/", h)
	return r
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	alias := r.URL.Query().Get("disk")
	encoded := r.URL.Query().Get("path")

	if alias == "" || encoded == "" {
		http.NotFound(w, r)
		return
	}

	filePath, err := fileoutput.DecodePath(encoded)
	if err != nil || filePath == "" {
		http.NotFound(w, r)
		return
	}

	if h.storage == nil || !h.storage.HasDisk(alias) {
		http.NotFound(w, r)
		return
	}

	disk := h.storage.Disk(alias)

	exists, err := disk.Exists(r.Context(), filePath)
	if err != nil {
		log.Error().Err(err).Str("disk", alias).Str("path", filePath).Msg("download: failed to check file")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if !exists {
		http.NotFound(w, r)
		return
	}

	obj, err := disk.Open(r.Context(), filePath)
	if err != nil {
		if errors.Is(err, fileoutput.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Error().Err(err).Str("disk", alias).Str("path", filePath).Msg("download: failed to open file")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer func() { _ = obj.Body.Close() }()

	name := path.Base(filePath)

	contentType := obj.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(path.Ext(name)))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if obj.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, obj.Body); err != nil {
		log.Warn().Err(err).Str("disk", alias).Str("path", filePath).Msg("download: stream interrupted")
	}
}
