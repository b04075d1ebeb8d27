package services

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"path"
	"strings"

	"github.com/dmitrijs2005/pwakit/internal/common"
)

// MaxUploadSize bounds a staged icon.
const MaxUploadSize = 2 << 20

// Content that must not appear at the start of an uploaded image.
var disallowedContent = []string{"body", "head", "html", "img", "plaintext", "a href", "pre", "script", "table", "title"}

// StagedFile is an upload after validation. Errors lists every problem
// found; the file may only be stored when it is empty.
type StagedFile struct {
	RealName string
	Data     []byte
	Errors   []error
}

// Uploader validates incoming icon uploads against an extension allow-list.
type Uploader struct {
	allowed []string
	maxSize int64
}

func NewUploader() *Uploader {
	return &Uploader{allowed: []string{"png"}, maxSize: MaxUploadSize}
}

// Stage reads r and validates it as the file called filename. It never
// fails; problems are reported in StagedFile.Errors.
func (u *Uploader) Stage(filename string, r io.Reader) *StagedFile {
	f := &StagedFile{RealName: CleanFilename(filename)}

	if filename == "" || r == nil {
		f.Errors = append(f.Errors, common.ErrUploadMissing)
		return f
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	allowed := false
	for _, a := range u.allowed {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		f.Errors = append(f.Errors, &common.UploadError{Err: common.ErrUploadExtension, Args: []any{ext}})
	}

	data, err := io.ReadAll(io.LimitReader(r, u.maxSize+1))
	if err != nil {
		f.Errors = append(f.Errors, fmt.Errorf("%w: %w", common.ErrFileMove, err))
		return f
	}
	f.Data = data

	switch {
	case len(data) == 0:
		f.Errors = append(f.Errors, common.ErrUploadEmpty)
	case int64(len(data)) > u.maxSize:
		f.Errors = append(f.Errors, common.ErrUploadContent)
	case hasDisallowedContent(data):
		f.Errors = append(f.Errors, common.ErrUploadContent)
	case allowed:
		if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
			f.Errors = append(f.Errors, common.ErrUploadContent)
		}
	}
	return f
}

func hasDisallowedContent(data []byte) bool {
	head := bytes.ToLower(data[:min(len(data), 256)])
	for _, tag := range disallowedContent {
		if bytes.Contains(head, []byte("<"+tag)) {
			return true
		}
	}
	return false
}

// CleanFilename lowercases the base name, drops every extension and
// replaces anything outside [a-z0-9_-] with "_", then appends ".png".
func CleanFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	base = strings.ToLower(base)

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		b.WriteString("icon")
	}
	return b.String() + IconExt
}
