package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// ErrInvalidToken はトークンの形式不正または署名不一致
var ErrInvalidToken = errors.New("invalid session token")

const minSecretLen = 32

// CreateToken はプロジェクトIDから署名付きトークンを生成する
func CreateToken(projectID string, secret []byte) string {
	return base64.URLEncoding.EncodeToString([]byte(projectID)) + "." + sign([]byte(projectID), secret)
}

// VerifyToken はトークンを検証しプロジェクトIDを返す
func VerifyToken(token string, secret []byte) (string, error) {
	payloadPart, sig, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrInvalidToken
	}
	payload, err := base64.URLEncoding.DecodeString(payloadPart)
	if err != nil || len(payload) == 0 {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(sign(payload, secret)), []byte(sig)) {
		return "", ErrInvalidToken
	}
	return string(payload), nil
}

// SecretBytes は文字列から署名用のバイト列を生成する（最低32バイト）
func SecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}

func sign(payload, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
