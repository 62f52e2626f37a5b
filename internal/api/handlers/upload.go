package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/runclub/runtrack/internal/api/middleware"
	"github.com/runclub/runtrack/internal/api/response"
	"github.com/runclub/runtrack/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Image accepts a single multipart "image" field of at most 5 MB and
// returns the stored object's public URL.
func (h *UploadHandler) Image(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, response.ErrUserNotFound)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxUploadBytes)
	if err := r.ParseMultipartForm(service.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
			return
		}
		response.Error(w, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	url, err := h.uploadService.UploadImage(r.Context(), user.ID, header.Filename, contentType, file, header.Size)
	if err != nil {
		if errors.Is(err, service.ErrNotImage) {
			response.Error(w, http.StatusBadRequest, response.ErrImagesOnly)
			return
		}
		log.Error().Err(err).Msg("image upload failed")
		response.ServerError(w)
		return
	}

	response.Success(w, http.StatusOK, response.MsgUploaded, map[string]string{"url": url})
}
