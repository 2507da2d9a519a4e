package handler

import (
	"bytes"
	"io/fs"
	"net/http"
	"time"

	"github.com/nadifa/guestbook/internal/nav"
	"github.com/nadifa/guestbook/internal/render"
)

const (
	StylesheetPath = "/static/guestbook.css"
	ScriptPath     = "/static/scroll.js"
)

// Assets はスタイルシートとスムーススクロール用スクリプトを配信する
type Assets struct {
	static   fs.FS
	script   []byte
	modified time.Time
}

// NewAssets は headerOffset を埋め込んだスクロールスクリプトを生成する
func NewAssets(headerOffset int) (*Assets, error) {
	script, err := nav.Script(headerOffset)
	if err != nil {
		return nil, err
	}
	return &Assets{static: render.Static(), script: script, modified: time.Now()}, nil
}

func (a *Assets) Stylesheet(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, a.static, "guestbook.css")
}

func (a *Assets) Script(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	http.ServeContent(w, r, "scroll.js", a.modified, bytes.NewReader(a.script))
}
