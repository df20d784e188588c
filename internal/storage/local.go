package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidKey は baseDir の外を指す key
var ErrInvalidKey = errors.New("storage: invalid key")

// LocalStorage はローカルファイルシステムに保存する Storage 実装。
type LocalStorage struct {
	baseDir   string // ディスク上のルートディレクトリ (例: "./uploads")
	urlPrefix string // HTTP で配信する際の URL プレフィックス (例: "/uploads")
}

// NewLocalStorage は LocalStorage を生成する。
func NewLocalStorage(baseDir, urlPrefix string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}
}

// BaseDir は配信用のルートディレクトリを返す。
func (s *LocalStorage) BaseDir() string { return s.baseDir }

// URLPrefix は配信用の URL プレフィックスを返す。
func (s *LocalStorage) URLPrefix() string { return s.urlPrefix }

func (s *LocalStorage) Save(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	dest, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("storage: write: %w", err)
	}

	return s.urlPrefix + "/" + filepath.ToSlash(key), nil
}

func (s *LocalStorage) Delete(_ context.Context, key string) error {
	dest, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dest); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("storage: remove: %w", err)
	}
	return nil
}

func (s *LocalStorage) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, s.urlPrefix+"/")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func (s *LocalStorage) path(key string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.baseDir, filepath.FromSlash(key)), nil
}
