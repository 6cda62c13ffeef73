package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mvidal/drivepdf-api/internal/drive"
	"github.com/mvidal/drivepdf-api/internal/storage"
	"github.com/mvidal/drivepdf-api/internal/upload"
	"github.com/mvidal/drivepdf-api/internal/worker"
)

const usageNote = "POST /upload (multipart/form-data): fields 'pdf' (file) and 'folder_id' (form field)"

// multipartMemoryLimit is how much of the parsed form is kept in memory
// before net/http spools the rest to disk.
const multipartMemoryLimit = 10 << 20

// requestSlack covers multipart framing and form fields on top of the file
// size cap when limiting the request body.
const requestSlack = 1 << 20

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	receiver  *upload.Receiver
	uploader  storage.Uploader
	pool      *worker.Pool
	maxBytes  int64
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(receiver *upload.Receiver, uploader storage.Uploader, pool *worker.Pool, maxBytes int64, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		receiver:  receiver,
		uploader:  uploader,
		pool:      pool,
		maxBytes:  maxBytes,
		validator: validator.New(),
		logger:    logger,
	}
}

// Root handles GET / requests.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{OK: true, Note: usageNote})
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Cron handles GET /cron requests. It is a no-op heartbeat for external
// schedulers that keep the instance warm.
func (h *Handlers) Cron(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("cron heartbeat")
	writeJSON(w, http.StatusOK, CronResponse{Status: "Cron executed successfully"})
}

// Upload handles POST /upload requests. The request moves through a linear
// sequence: form validation, content-type gate, chunked buffering to a temp
// file, the blocking provider call on the worker pool, cleanup, response.
// The temp file is removed on every exit path.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxBytes+requestSlack {
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds size limit", "FILE_TOO_LARGE")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+requestSlack)

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file exceeds size limit", "FILE_TOO_LARGE")
			return
		}
		h.logger.Warn("failed to parse multipart form",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid multipart form", "INVALID_MULTIPART")
		return
	}

	form := uploadForm{FolderID: r.FormValue("folder_id")}
	if err := h.validator.Struct(form); err != nil {
		writeError(w, http.StatusBadRequest, "missing folder_id form field", "MISSING_FOLDER_ID")
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing pdf file field", "MISSING_PDF_FIELD")
		return
	}
	defer func() { _ = file.Close() }()

	if ct := header.Header.Get("Content-Type"); !contentTypeAllowed(ct) {
		writeError(w, http.StatusBadRequest, "invalid content type: "+ct, "INVALID_CONTENT_TYPE")
		return
	}

	path, err := h.receiver.Receive(file, header.Filename)
	if err != nil {
		removeIfExists(path)
		h.writeReceiveError(w, err)
		return
	}

	name := header.Filename
	if name == "" {
		name = filepath.Base(path)
	}

	// The provider call must survive a client disconnect once dispatched.
	ctx := context.WithoutCancel(r.Context())

	var result storage.Result
	var uploadErr error
	if err := h.pool.Do(ctx, func() {
		result, uploadErr = h.uploader.Upload(ctx, path, name, form.FolderID)
	}); err != nil {
		uploadErr = err
	}

	removeIfExists(path)

	if uploadErr != nil {
		h.logger.Error("provider upload failed",
			slog.String("folder_id", form.FolderID),
			slog.String("filename", name),
			slog.String("error", uploadErr.Error()),
		)
		writeError(w, http.StatusBadGateway, "upload to storage provider failed", uploadErrorCode(uploadErr))
		return
	}

	h.logger.Info("upload complete",
		slog.String("file_id", result.FileID),
		slog.String("folder_id", form.FolderID),
		slog.String("filename", name),
	)

	writeJSON(w, http.StatusCreated, UploadResponse{
		FileID:       result.FileID,
		ShareableURL: result.ShareableURL,
	})
}

// writeReceiveError maps receiver failures to their HTTP status codes.
func (h *Handlers) writeReceiveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, upload.ErrEmptyFile):
		writeError(w, http.StatusBadRequest, "empty file", "EMPTY_FILE")
	case errors.Is(err, upload.ErrInvalidType):
		writeError(w, http.StatusBadRequest, "invalid file type: only PDF allowed", "INVALID_FILE_TYPE")
	case errors.Is(err, upload.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds size limit", "FILE_TOO_LARGE")
	default:
		h.logger.Error("failed to save uploaded file",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to save uploaded file", "SAVE_FAILED")
	}
}

// uploadErrorCode distinguishes provider failures for clients; the status is
// 502 for all of them.
func uploadErrorCode(err error) string {
	switch {
	case errors.Is(err, drive.ErrNotConfigured):
		return "CREDENTIALS_NOT_CONFIGURED"
	case errors.Is(err, drive.ErrTokenExchange):
		return "AUTH_FAILED"
	default:
		return "UPLOAD_FAILED"
	}
}

// contentTypeAllowed accepts an absent content type, the PDF type, or any
// generic application/* type. The broad application/ prefix mirrors how
// clients commonly send application/octet-stream for PDFs.
func contentTypeAllowed(ct string) bool {
	if ct == "" || ct == "application/pdf" {
		return true
	}
	return strings.HasPrefix(ct, "application/")
}

func removeIfExists(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
