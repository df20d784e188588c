package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/halu23489/genba/internal/model"
	"github.com/halu23489/genba/internal/storage"
)

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = fw.Write(content)
	}
	_ = mw.Close()

	req := httptest.NewRequest("POST", "/api/project/design", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var pdfContent = []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")

func TestDesignHandler_Upload_SavesAndLinks(t *testing.T) {
	store := storage.NewLocalStorage(t.TempDir(), "/uploads")
	var linked string
	ps := &mockProjectService{
		setDesignLinkFunc: func(_ context.Context, id, link string) (*model.Project, error) {
			linked = link
			p := model.NewProject(id)
			p.DesignLink = link
			return p, nil
		},
	}
	h := NewDesignHandler(store, ps)

	rec := httptest.NewRecorder()
	h.Upload(rec, withSession(multipartRequest(t, "file", "plan.pdf", pdfContent), "p1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(body["design_link"], "/uploads/designs/p1/") || !strings.HasSuffix(body["design_link"], ".pdf") {
		t.Errorf("unexpected design link %q", body["design_link"])
	}
	if linked != body["design_link"] {
		t.Errorf("service got %q, response has %q", linked, body["design_link"])
	}
}

// recordingStorage は削除された key を記録する Storage
type recordingStorage struct {
	*storage.LocalStorage
	deleted []string
}

func (s *recordingStorage) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.LocalStorage.Delete(ctx, key)
}

func TestDesignHandler_Upload_ReplacesOldDesign(t *testing.T) {
	store := &recordingStorage{LocalStorage: storage.NewLocalStorage(t.TempDir(), "/uploads")}
	ps := &mockProjectService{
		getFunc: func(_ context.Context, id string) (*model.Project, error) {
			p := model.NewProject(id)
			p.DesignLink = "/uploads/designs/p1/old.pdf"
			return p, nil
		},
	}
	h := NewDesignHandler(store, ps)

	rec := httptest.NewRecorder()
	h.Upload(rec, withSession(multipartRequest(t, "file", "plan.pdf", pdfContent), "p1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "designs/p1/old.pdf" {
		t.Errorf("expected old design deleted, got %v", store.deleted)
	}
}

func TestDesignHandler_Upload_RejectsUnsupportedType(t *testing.T) {
	h := NewDesignHandler(storage.NewLocalStorage(t.TempDir(), "/uploads"), &mockProjectService{})

	rec := httptest.NewRecorder()
	h.Upload(rec, withSession(multipartRequest(t, "file", "plan.pdf", []byte("just some text")), "p1"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if code := decodeError(t, rec); code != "invalid_content_type" {
		t.Errorf("expected invalid_content_type, got %q", code)
	}
}

func TestDesignHandler_Upload_FileRequired(t *testing.T) {
	h := NewDesignHandler(storage.NewLocalStorage(t.TempDir(), "/uploads"), &mockProjectService{})

	rec := httptest.NewRecorder()
	h.Upload(rec, withSession(multipartRequest(t, "", "", nil), "p1"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if code := decodeError(t, rec); code != "file_required" {
		t.Errorf("expected file_required, got %q", code)
	}
}

func TestDesignHandler_Upload_TooLarge(t *testing.T) {
	h := NewDesignHandler(storage.NewLocalStorage(t.TempDir(), "/uploads"), &mockProjectService{})

	big := append(append([]byte{}, pdfContent...), bytes.Repeat([]byte{'0'}, maxDesignSize+maxFormMemory)...)
	rec := httptest.NewRecorder()
	h.Upload(rec, withSession(multipartRequest(t, "file", "big.pdf", big), "p1"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if code := decodeError(t, rec); code != "file_too_large" {
		t.Errorf("expected file_too_large, got %q", code)
	}
}
