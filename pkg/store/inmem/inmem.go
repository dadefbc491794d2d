package inmem

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/store"
	"github.com/uswitch/typearchive/pkg/types"
)

type inmemStore struct {
	archives  map[types.GUID]*types.Archive
	broadcast *store.Broadcast
	logger    *zap.Logger

	rw sync.RWMutex
}

type Option func(*inmemStore)

func WithLogger(logger *zap.Logger) Option {
	return func(s *inmemStore) { s.logger = logger }
}

func NewInMemoryStore(opts ...Option) store.Store {
	s := &inmemStore{
		archives: map[types.GUID]*types.Archive{},
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.broadcast = store.NewBroadcast(s.logger)

	return s
}

func (s *inmemStore) Len(_ context.Context) (int, error) {
	s.rw.RLock()
	defer s.rw.RUnlock()

	return len(s.archives), nil
}

func (s *inmemStore) Put(ctx context.Context, archive *types.Archive) error {
	if err := store.CheckArchive(archive); err != nil {
		return err
	}

	guid := archive.Properties.GUID

	s.rw.Lock()
	s.archives[guid] = archive
	s.rw.Unlock()

	s.logger.Debug("put archive", zap.Stringer("guid", guid), zap.String("version", archive.Properties.Version))

	return s.broadcast.Send(ctx, archive, guid, store.AnyArchive)
}

func (s *inmemStore) Get(_ context.Context, guid types.GUID) (*types.Archive, error) {
	s.rw.RLock()
	archive, ok := s.archives[guid]
	s.rw.RUnlock()

	if !ok {
		return nil, fmt.Errorf("archive %s: %w", guid, store.ErrNotFound)
	}

	return archive, nil
}

func (s *inmemStore) List(_ context.Context) ([]types.ArchiveProperties, error) {
	s.rw.RLock()
	props := make([]types.ArchiveProperties, 0, len(s.archives))
	for _, archive := range s.archives {
		props = append(props, archive.Properties)
	}
	s.rw.RUnlock()

	store.SortProperties(props)

	return props, nil
}

func (s *inmemStore) Watch(ctx context.Context, guid types.GUID) (chan *types.Archive, error) {
	return s.broadcast.Register(ctx, guid)
}
