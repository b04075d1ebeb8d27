package models

// Icon is a web app manifest icon descriptor. It is derived from a tracked
// file on every read and never persisted.
type Icon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

// ResyncResult reports what a resync changed. Skipped holds discovered
// files whose size could not be read; they stay untracked.
type ResyncResult struct {
	Tracked   []string `json:"tracked"`
	Untracked []string `json:"untracked"`
	Skipped   []string `json:"skipped"`
}

// Changed reports whether the resync touched the ledger.
func (r ResyncResult) Changed() bool {
	return len(r.Tracked) > 0 || len(r.Untracked) > 0
}
