package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nadifa/guestbook/internal/model"
	"github.com/nadifa/guestbook/internal/storage"
)

// 訪問者の名前空間内のキー
const (
	KeyUserName = "userName"
	KeyMessages = "messages"
)

// KeyValue はリポジトリが読み書きする訪問者ごとのストア。
// *storage.KV が実装する。
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// GuestbookRepository は訪問者の名前とメッセージ一覧の永続化インターフェース
type GuestbookRepository interface {
	// LoadMessages は保存済みの一覧を新しい順で返す。
	// 未保存・null・解析不能な値は空の一覧として扱う。
	LoadMessages(ctx context.Context) ([]model.Message, error)

	// SaveMessages は一覧全体のスナップショットで上書きする。
	SaveMessages(ctx context.Context, messages []model.Message) error

	// LoadUserName は保存済みの名前と、存在するかどうかを返す。
	LoadUserName(ctx context.Context) (string, bool, error)

	// SaveUserName は名前を文字列のまま保存する。
	SaveUserName(ctx context.Context, name string) error
}

// KVGuestbookRepository は GuestbookRepository の KeyValue 実装
type KVGuestbookRepository struct {
	kv KeyValue
}

// NewGuestbookRepository は kv を使うリポジトリを生成する
func NewGuestbookRepository(kv KeyValue) *KVGuestbookRepository {
	return &KVGuestbookRepository{kv: kv}
}

var _ GuestbookRepository = (*KVGuestbookRepository)(nil)

func (r *KVGuestbookRepository) LoadMessages(ctx context.Context) ([]model.Message, error) {
	raw, err := r.kv.Get(ctx, KeyMessages)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}

	var messages []model.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		// 壊れた値は未保存と同じ扱い。次の保存で置き換わる。
		slog.Warn("discarding unparseable stored messages", "error", err, "bytes", len(raw))
		return nil, nil
	}
	return messages, nil
}

func (r *KVGuestbookRepository) SaveMessages(ctx context.Context, messages []model.Message) error {
	if messages == nil {
		messages = []model.Message{}
	}
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	if err := r.kv.Set(ctx, KeyMessages, string(data)); err != nil {
		return fmt.Errorf("save messages: %w", err)
	}
	return nil
}

func (r *KVGuestbookRepository) LoadUserName(ctx context.Context) (string, bool, error) {
	name, err := r.kv.Get(ctx, KeyUserName)
	if errors.Is(err, storage.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load user name: %w", err)
	}
	return name, true, nil
}

func (r *KVGuestbookRepository) SaveUserName(ctx context.Context, name string) error {
	if err := r.kv.Set(ctx, KeyUserName, name); err != nil {
		return fmt.Errorf("save user name: %w", err)
	}
	return nil
}
