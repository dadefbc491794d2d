package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/store"
	"github.com/uswitch/typearchive/pkg/types"
)

// fileStore keeps one file per archive, named after its GUID.
type fileStore struct {
	dir       string
	format    types.Format
	broadcast *store.Broadcast
	logger    *zap.Logger

	rw sync.RWMutex
}

type Option func(*fileStore)

func WithLogger(logger *zap.Logger) Option {
	return func(s *fileStore) { s.logger = logger }
}

func WithFormat(format types.Format) Option {
	return func(s *fileStore) { s.format = format }
}

func NewFileStore(dir string, opts ...Option) (store.Store, error) {
	s := &fileStore{
		dir:    dir,
		format: types.JSON,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	s.broadcast = store.NewBroadcast(s.logger)

	return s, nil
}

func (s *fileStore) path(guid types.GUID) string {
	return filepath.Join(s.dir, string(guid)+s.format.Ext())
}

func (s *fileStore) guids() ([]types.GUID, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	guids := []types.GUID{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, s.format.Ext()) {
			continue
		}

		guid := types.GUID(strings.TrimSuffix(name, s.format.Ext()))
		if err := guid.Validate(); err != nil {
			s.logger.Warn("skipping file", zap.String("name", name), zap.Error(err))
			continue
		}

		guids = append(guids, guid)
	}

	return guids, nil
}

func (s *fileStore) Len(_ context.Context) (int, error) {
	s.rw.RLock()
	defer s.rw.RUnlock()

	guids, err := s.guids()
	return len(guids), err
}

func (s *fileStore) Put(ctx context.Context, archive *types.Archive) error {
	if err := store.CheckArchive(archive); err != nil {
		return err
	}

	guid := archive.Properties.GUID

	s.rw.Lock()
	err := s.write(archive)
	s.rw.Unlock()

	if err != nil {
		return fmt.Errorf("writing archive %s: %w", guid, err)
	}

	s.logger.Debug("put archive", zap.Stringer("guid", guid), zap.String("path", s.path(guid)))

	return s.broadcast.Send(ctx, archive, guid, store.AnyArchive)
}

// write goes via a temporary file so readers never see a partial archive
func (s *fileStore) write(archive *types.Archive) error {
	tmp, err := os.CreateTemp(s.dir, ".archive-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := types.EncodeArchive(tmp, archive, s.format); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path(archive.Properties.GUID))
}

func (s *fileStore) read(guid types.GUID) (*types.Archive, error) {
	f, err := os.Open(s.path(guid))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("archive %s: %w", guid, store.ErrNotFound)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	archive, err := types.DecodeArchive(f, s.format)
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", guid, err)
	}

	return archive, nil
}

func (s *fileStore) Get(_ context.Context, guid types.GUID) (*types.Archive, error) {
	if err := guid.Validate(); err != nil {
		return nil, fmt.Errorf("archive %s: %w", guid, store.ErrNotFound)
	}

	s.rw.RLock()
	defer s.rw.RUnlock()

	return s.read(guid)
}

func (s *fileStore) List(_ context.Context) ([]types.ArchiveProperties, error) {
	s.rw.RLock()
	defer s.rw.RUnlock()

	guids, err := s.guids()
	if err != nil {
		return nil, err
	}

	props := make([]types.ArchiveProperties, 0, len(guids))
	for _, guid := range guids {
		archive, err := s.read(guid)
		if err != nil {
			return nil, err
		}
		props = append(props, archive.Properties)
	}

	store.SortProperties(props)

	return props, nil
}

func (s *fileStore) Watch(ctx context.Context, guid types.GUID) (chan *types.Archive, error) {
	return s.broadcast.Register(ctx, guid)
}
