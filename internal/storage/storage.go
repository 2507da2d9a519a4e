package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound は一度も Set されていないキーを Get したときに返る。
	ErrNotFound = errors.New("storage: key not found")
	// ErrInvalidNamespace はパス要素として安全でない名前空間・キーに対して返る。
	ErrInvalidNamespace = errors.New("storage: invalid namespace")
	// ErrUnknownBackend は未対応のバックエンド名で Open したときに返る。
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// Storage は名前空間ごとに分割された文字列のキーバリューストア。
// 訪問者ごとに 1 つの名前空間を持ち、ブラウザの localStorage に相当する。
// Set は既存の値を丸ごと置き換える。
type Storage interface {
	// Get は key の値を返す。存在しなければ ErrNotFound。
	Get(ctx context.Context, namespace, key string) (string, error)

	// Set は key に value を保存する（上書き）。
	Set(ctx context.Context, namespace, key, value string) error

	// Ping はバックエンドへの疎通を確認する。
	Ping(ctx context.Context) error

	// Close はバックエンドのリソースを解放する。
	Close() error
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName は名前空間・キーが空でなく、ファイルパスを含む全バックエンドで
// 安全な文字だけで構成されているかを検証する。
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidNamespace, name)
	}
	return nil
}

// KV は 1 つの名前空間に束縛された Storage。
type KV struct {
	store     Storage
	namespace string
}

// Scope は namespace 用の KV を返す。
func Scope(store Storage, namespace string) (*KV, error) {
	if err := ValidateName(namespace); err != nil {
		return nil, err
	}
	return &KV{store: store, namespace: namespace}, nil
}

// Namespace は束縛先の名前空間を返す。
func (kv *KV) Namespace() string { return kv.namespace }

// Get は key の値を返す。存在しなければ ErrNotFound。
func (kv *KV) Get(ctx context.Context, key string) (string, error) {
	return kv.store.Get(ctx, kv.namespace, key)
}

// Set は key の値を上書きする。
func (kv *KV) Set(ctx context.Context, key, value string) error {
	return kv.store.Set(ctx, kv.namespace, key, value)
}
