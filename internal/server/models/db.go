// Package models defines server-side data models persisted in the database.
package models

// StorageFile is one row of the tracking ledger: a root-relative file path
// known to a storage namespace, with the size recorded when it was tracked.
type StorageFile struct {
	Path    string
	Storage string
	Size    int64
}

// Style is the subset of a board style the web app manifest cares about.
type Style struct {
	ID         int64  `json:"style_id"`
	Name       string `json:"style_name"`
	Active     bool   `json:"-"`
	BgColor    string `json:"pwa_bg_color"`
	ThemeColor string `json:"pwa_theme_color"`
}
