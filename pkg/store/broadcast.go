package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/types"
)

type registration struct {
	ch   chan *types.Archive
	done <-chan struct{}
}

// Broadcast fans archives out to everyone watching a GUID. A watcher's channel is closed
// once its context is done.
type Broadcast struct {
	registered map[types.GUID][]registration
	logger     *zap.Logger

	rw sync.RWMutex
}

func NewBroadcast(logger *zap.Logger) *Broadcast {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Broadcast{
		registered: map[types.GUID][]registration{},
		logger:     logger,
	}
}

func (b *Broadcast) Register(ctx context.Context, guid types.GUID) (chan *types.Archive, error) {
	b.rw.Lock()
	defer b.rw.Unlock()

	reg := registration{
		ch:   make(chan *types.Archive),
		done: ctx.Done(),
	}

	b.registered[guid] = append(b.registered[guid], reg)

	go func() {
		<-ctx.Done()

		b.rw.Lock()
		oldRegistered := b.registered[guid]
		newRegistered := []registration{}
		for _, other := range oldRegistered {
			if other.ch != reg.ch {
				newRegistered = append(newRegistered, other)
			}
		}

		if len(newRegistered) == 0 {
			delete(b.registered, guid)
		} else {
			b.registered[guid] = newRegistered
		}
		b.rw.Unlock()

		close(reg.ch)
	}()

	return reg.ch, nil
}

func (b *Broadcast) Len(guid types.GUID) int {
	b.rw.RLock()
	defer b.rw.RUnlock()

	return len(b.registered[guid])
}

// Send blocks until every watcher of the guids has received the archive or gone away.
func (b *Broadcast) Send(ctx context.Context, archive *types.Archive, guids ...types.GUID) error {
	b.rw.RLock()
	defer b.rw.RUnlock()

	var wg sync.WaitGroup

	for _, guid := range guids {
		regs := b.registered[guid]
		wg.Add(len(regs))
		for _, reg := range regs {
			go func(reg registration) {
				defer wg.Done()

				select {
				case reg.ch <- archive:
				case <-reg.done:
					b.logger.Debug("watcher went away", zap.Stringer("guid", guid))
				case <-ctx.Done():
					b.logger.Warn("send cancelled", zap.Stringer("guid", guid), zap.Error(ctx.Err()))
				}
			}(reg)
		}
	}

	wg.Wait()

	return ctx.Err()
}
