package storage

import (
	"context"
	"io"
)

// Storage は図面ファイルの保存・削除を抽象化するインターフェース。
type Storage interface {
	// Save はファイルを保存し、公開 URL を返す。
	// key はストレージ内の一意パス (例: "designs/<project id>/<random>.pdf")。
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Delete は key に対応するファイルを削除する。
	Delete(ctx context.Context, key string) error

	// KeyFromURL は Save が返した URL から key を取り出す。
	// このストレージの URL でなければ false。
	KeyFromURL(url string) (string, bool)
}
