package services

import (
	"context"
	"iter"
	"strings"

	"github.com/dmitrijs2005/pwakit/internal/server/storage"
)

// IconExt is the only file suffix discovery and uploads accept.
const IconExt = ".png"

// Discovery scans the flat storage root for PNG files.
type Discovery struct {
	store storage.Store
}

func NewDiscovery(store storage.Store) *Discovery {
	return &Discovery{store: store}
}

// rootPath prefixes a root-relative name with root. Resync strips the same
// prefix, so both sides must build it here.
func rootPath(root, name string) string {
	if root != "" {
		return root + "/" + name
	}
	return name
}

// Find yields the root-prefixed path of every file under the storage root
// whose name ends in ".png". Each iteration lists the store again. A
// missing root yields nothing; a listing failure is yielded once as the
// error and ends the sequence.
func (d *Discovery) Find(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		names, err := d.store.List(ctx)
		if err != nil {
			yield("", err)
			return
		}
		root := d.store.Root()
		for _, name := range names {
			if !strings.HasSuffix(name, IconExt) {
				continue
			}
			if !yield(rootPath(root, name), nil) {
				return
			}
		}
	}
}
