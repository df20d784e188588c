package handler

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/halu23489/genba/internal/service"
	"github.com/halu23489/genba/internal/storage"
)

const maxDesignSize = 10 << 20 // 10 MB

var allowedDesignTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

// DesignHandler は図面ファイルのアップロードを処理する
type DesignHandler struct {
	storage        storage.Storage
	projectService service.ProjectService
}

// NewDesignHandler は DesignHandler を生成する
func NewDesignHandler(store storage.Storage, ps service.ProjectService) *DesignHandler {
	return &DesignHandler{storage: store, projectService: ps}
}

// Upload は POST /api/project/design を処理する
func (h *DesignHandler) Upload(w http.ResponseWriter, r *http.Request) {
	projectID, ok := sessionProjectID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDesignSize+maxFormMemory)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file_required")
		return
	}
	defer file.Close()

	if header.Size > maxDesignSize {
		writeError(w, http.StatusBadRequest, "file_too_large")
		return
	}

	// Content-Type は申告値ではなく中身から判定する
	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	ct := http.DetectContentType(head[:n])
	ext, ok := allowedDesignTypes[ct]
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_content_type")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		slog.Error("design upload failed", "error", err, "project_id", projectID)
		writeError(w, http.StatusInternalServerError, "upload_failed")
		return
	}

	project, err := h.projectService.Get(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, err, "design upload", projectID)
		return
	}

	b := make([]byte, 16)
	_, _ = rand.Read(b)
	key := path.Join("designs", projectID, hex.EncodeToString(b)+ext)
	url, err := h.storage.Save(r.Context(), key, file, ct)
	if err != nil {
		slog.Error("design upload failed", "error", err, "project_id", projectID)
		writeError(w, http.StatusInternalServerError, "upload_failed")
		return
	}

	if _, err := h.projectService.SetDesignLink(r.Context(), projectID, url); err != nil {
		_ = h.storage.Delete(r.Context(), key)
		writeServiceError(w, err, "design link update", projectID)
		return
	}

	// 既存の図面を削除
	if oldKey, ok := h.storage.KeyFromURL(project.DesignLink); ok {
		if err := h.storage.Delete(r.Context(), oldKey); err != nil {
			slog.Warn("old design delete failed", "error", err, "project_id", projectID)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"design_link": url})
}
