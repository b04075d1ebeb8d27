package services

import (
	"path"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/pwakit/internal/common"
)

var validIconName = regexp.MustCompile(`^[a-zA-Z0-9_./-]+$`)

// NormalizeDeletePath turns an untrusted icon reference into a path
// relative to root. A reference containing "<root>/" is cut right after
// its first occurrence, anything else is reduced to its base name, so
// "../../etc/foo.png" becomes "foo.png".
func NormalizeDeletePath(raw, root string) (string, error) {
	if raw == "" {
		return "", common.ErrEmptyPath
	}

	var name string
	if i := strings.Index(raw, root+"/"); root != "" && i >= 0 {
		name = raw[i+len(root)+1:]
	} else {
		name = path.Base(raw)
	}

	if !validIconName.MatchString(name) {
		return "", common.ErrInvalidName
	}
	if clean := path.Clean(name); clean != name || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return "", common.ErrInvalidName
	}
	return name, nil
}
