// Package visitor identifies anonymous visitors with a signed cookie so each
// browser gets its own storage namespace.
package visitor

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMalformedToken   = errors.New("malformed visitor token")
	ErrInvalidSignature = errors.New("invalid visitor token signature")
)

const (
	// CookieName は訪問者クッキー名
	CookieName   = "guestbook_visitor"
	minSecretLen = 32
)

// CreateToken は訪問者 ID に署名したトークンを生成する
func CreateToken(id string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(id))
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(id)) + "." + sig
}

// VerifyToken は署名を検証し、訪問者 ID を返す。ID は UUID のみ受け付ける
func VerifyToken(token string, secret []byte) (string, error) {
	payloadPart, sigPart, ok := strings.Cut(token, ".")
	if !ok {
		return "", ErrMalformedToken
	}
	payload, err := base64.URLEncoding.DecodeString(payloadPart)
	if err != nil {
		return "", ErrMalformedToken
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(sigPart)) {
		return "", ErrInvalidSignature
	}

	id := string(payload)
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrMalformedToken
	}
	return id, nil
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
