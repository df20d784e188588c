package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/halu23489/genba/internal/repository"
	"github.com/halu23489/genba/internal/service"
	"github.com/halu23489/genba/pkg/session"
)

// maxFormMemory はフォーム解析時にメモリに保持する上限
const maxFormMemory = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeServiceError はサービス層のエラーを HTTP ステータスに変換して返す
func writeServiceError(w http.ResponseWriter, err error, op, projectID string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input")
	case errors.Is(err, service.ErrProjectNotConfigured):
		writeError(w, http.StatusConflict, "project_not_configured")
	case errors.Is(err, service.ErrCycleStepsRequired):
		writeError(w, http.StatusConflict, "cycle_steps_required")
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		slog.Error(op+" failed", "error", err, "project_id", projectID)
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

// sessionProjectID はセッションのプロジェクトIDを返す。無ければ 401 を書き込み false
func sessionProjectID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := session.ProjectIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "session_required")
	}
	return id, ok
}

// parseForm は urlencoded と multipart の両方を解析する
func parseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// formList は "name[]" の値を返す。無ければ "name" の値を返す
func formList(r *http.Request, name string) []string {
	if vs, ok := r.Form[name+"[]"]; ok {
		return vs
	}
	return r.Form[name]
}
