package services

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"io"
	"slices"
	"strings"

	"github.com/dmitrijs2005/pwakit/internal/common"
	"github.com/dmitrijs2005/pwakit/internal/logging"
	"github.com/dmitrijs2005/pwakit/internal/server/models"
	"github.com/dmitrijs2005/pwakit/internal/server/storage"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// IconType is the MIME type of every icon descriptor.
const IconType = "image/png"

// Tracker is the ledger the icon service keeps in sync with the store.
type Tracker interface {
	GetTrackedFiles(ctx context.Context) ([]string, error)
	TrackFile(ctx context.Context, path string, size int64) error
	TrackFiles(ctx context.Context, files []models.StorageFile) error
	UntrackFile(ctx context.Context, path string) error
	UntrackAll(ctx context.Context) error
}

// IconService manages the site icons: it reconciles the ledger with the
// store, builds manifest icon descriptors and performs uploads and deletes.
type IconService struct {
	store     storage.Store
	tracker   Tracker
	discovery *Discovery
	uploader  *Uploader
	cache     *IconCache
	logger    logging.Logger
	tracer    trace.Tracer
}

func NewIconService(store storage.Store, tracker Tracker, cache *IconCache, logger logging.Logger) *IconService {
	return &IconService{
		store:     store,
		tracker:   tracker,
		discovery: NewDiscovery(store),
		uploader:  NewUploader(),
		cache:     cache,
		logger:    logger.With("module", "icons"),
		tracer:    otel.Tracer("pwakit/icons"),
	}
}

// StoragePath is the configured storage root.
func (s *IconService) StoragePath() string {
	return s.store.Root()
}

// Provider names the active storage provider.
func (s *IconService) Provider() string {
	return s.store.Name()
}

// Store exposes the underlying image store.
func (s *IconService) Store() storage.Store {
	return s.store
}

func (s *IconService) rootPath(name string) string {
	return rootPath(s.store.Root(), name)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Open returns the bytes of one icon under the storage root.
func (s *IconService) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rel, err := NormalizeDeletePath(name, s.store.Root())
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(rel, IconExt) {
		return nil, common.NotFound("open", rel)
	}
	return s.store.Open(ctx, rel)
}

// Icons returns a descriptor for every tracked file whose PNG header can
// be read, in ledger order. Missing or unreadable files are left out. Each
// src is prefix followed by the root-prefixed path, with no normalization.
func (s *IconService) Icons(ctx context.Context, prefix string) (icons []models.Icon, err error) {
	cached, gen, ok := s.cache.Get(prefix)
	if ok {
		return cached, nil
	}

	ctx, span := s.tracer.Start(ctx, "icons.Icons")
	defer func() { endSpan(span, err) }()

	tracked, err := s.tracker.GetTrackedFiles(ctx)
	if err != nil {
		return nil, err
	}

	icons = make([]models.Icon, 0, len(tracked))
	for _, file := range tracked {
		w, h, err := s.dimensions(ctx, file)
		if err != nil {
			s.logger.Debug(ctx, "icon skipped", "path", file, "error", err)
			continue
		}
		icons = append(icons, models.Icon{
			Src:   prefix + s.rootPath(file),
			Sizes: fmt.Sprintf("%dx%d", w, h),
			Type:  IconType,
		})
	}

	s.cache.Set(prefix, icons, gen)
	return icons, nil
}

// dimensions reads the PNG header only.
func (s *IconService) dimensions(ctx context.Context, file string) (int, int, error) {
	rc, err := s.store.Open(ctx, file)
	if err != nil {
		return 0, 0, err
	}
	defer rc.Close()

	cfg, err := png.DecodeConfig(rc)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// Resync aligns the ledger with the PNG files currently under the storage
// root. New files are tracked in one batch, vanished ones untracked one by
// one. A file whose size cannot be read is skipped and reported, never
// fatal. Running it twice without store changes is a no-op the second time.
func (s *IconService) Resync(ctx context.Context) (res models.ResyncResult, err error) {
	ctx, span := s.tracer.Start(ctx, "icons.Resync")
	defer func() { endSpan(span, err) }()

	prefix := s.rootPath("")
	found := map[string]struct{}{}
	for p, err := range s.discovery.Find(ctx) {
		if err != nil {
			return res, err
		}
		found[strings.TrimPrefix(p, prefix)] = struct{}{}
	}

	trackedList, err := s.tracker.GetTrackedFiles(ctx)
	if err != nil {
		return res, err
	}
	tracked := make(map[string]struct{}, len(trackedList))
	for _, p := range trackedList {
		tracked[p] = struct{}{}
	}

	toTrack := difference(found, tracked)
	toUntrack := difference(tracked, found)

	files := make([]models.StorageFile, 0, len(toTrack))
	for _, p := range toTrack {
		size, err := s.store.Size(ctx, p)
		if err != nil {
			s.logger.Warn(ctx, "resync skipped file", "path", p, "error", err)
			res.Skipped = append(res.Skipped, p)
			continue
		}
		files = append(files, models.StorageFile{Path: p, Size: size})
		res.Tracked = append(res.Tracked, p)
	}

	if len(files) > 0 {
		if err := s.tracker.TrackFiles(ctx, files); err != nil {
			return models.ResyncResult{}, err
		}
	}
	s.cache.Invalidate()

	for _, p := range toUntrack {
		if err := s.tracker.UntrackFile(ctx, p); err != nil {
			return res, err
		}
		res.Untracked = append(res.Untracked, p)
	}

	span.SetAttributes(
		attribute.Int("tracked", len(res.Tracked)),
		attribute.Int("untracked", len(res.Untracked)),
		attribute.Int("skipped", len(res.Skipped)),
	)
	s.logger.Info(ctx, "resync done", "tracked", len(res.Tracked), "untracked", len(res.Untracked), "skipped", len(res.Skipped))
	return res, nil
}

// difference returns the sorted members of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	out := make([]string, 0)
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// Delete validates raw, removes the file from the store and then untracks
// it. When the store refuses, the ledger is left untouched. It returns the
// validated root-relative name.
func (s *IconService) Delete(ctx context.Context, raw string) (name string, err error) {
	ctx, span := s.tracer.Start(ctx, "icons.Delete")
	defer func() { endSpan(span, err) }()

	name, err = NormalizeDeletePath(raw, s.store.Root())
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(name, IconExt) {
		return "", common.ErrInvalidName
	}
	span.SetAttributes(attribute.String("path", name))

	if err := s.store.Delete(ctx, name); err != nil {
		return "", err
	}
	s.cache.Invalidate()

	if err := s.tracker.UntrackFile(ctx, name); err != nil {
		return "", err
	}
	s.logger.Info(ctx, "icon deleted", "path", name)
	return name, nil
}

// Upload validates an uploaded icon, stores it and tracks it. It returns
// the stored name. An existing file of the same name is never replaced. A
// file that cannot be tracked is removed again, so a failed upload never
// leaves a tracked record behind.
func (s *IconService) Upload(ctx context.Context, filename string, r io.Reader) (name string, err error) {
	ctx, span := s.tracer.Start(ctx, "icons.Upload")
	defer func() { endSpan(span, err) }()

	staged := s.uploader.Stage(filename, r)
	if len(staged.Errors) > 0 {
		return "", staged.Errors[0]
	}
	name = staged.RealName

	exists, err := s.store.Exists(ctx, name)
	if err != nil {
		return "", err
	}
	if exists {
		return "", &common.UploadError{Err: common.ErrUploadExists, Args: []any{name}}
	}

	if err := s.store.Put(ctx, name, bytes.NewReader(staged.Data)); err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrFileMove, err)
	}

	if err := s.tracker.TrackFile(ctx, name, int64(len(staged.Data))); err != nil {
		if derr := s.store.Delete(ctx, name); derr != nil {
			s.logger.Error(ctx, "failed to remove untracked upload", "path", name, "error", derr)
		}
		return "", err
	}
	s.cache.Invalidate()

	s.logger.Info(ctx, "icon uploaded", "path", name, "size", len(staged.Data))
	return name, nil
}

// Install prepares the storage root and, on a fresh ledger, tracks the
// icons already present in it.
func (s *IconService) Install(ctx context.Context) (models.ResyncResult, error) {
	if err := s.store.EnsureRoot(ctx); err != nil {
		return models.ResyncResult{}, err
	}
	tracked, err := s.tracker.GetTrackedFiles(ctx)
	if err != nil {
		return models.ResyncResult{}, err
	}
	if len(tracked) > 0 {
		return models.ResyncResult{}, nil
	}
	return s.Resync(ctx)
}

// Uninstall forgets every tracked icon. Files stay in the store.
func (s *IconService) Uninstall(ctx context.Context) error {
	if err := s.tracker.UntrackAll(ctx); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}
