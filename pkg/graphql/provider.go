package graphql

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/store"
	"github.com/uswitch/typearchive/pkg/types"
)

type contextKey string

const AccessorContextKey contextKey = "graphql-accessor"

var ErrNoArchive = errors.New("no archive loaded")

// Provider serves queries against one archive from a store. Following a GUID keeps that
// archive; following store.AnyArchive keeps whichever archive has the highest version.
type Provider struct {
	s      store.Store
	follow types.GUID
	logger *zap.Logger

	schema graphql.Schema

	acc *accessor.Accessor
	rw  sync.RWMutex
}

type Option func(*Provider)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

func Following(guid types.GUID) Option {
	return func(p *Provider) { p.follow = guid }
}

func NewProvider(s store.Store, opts ...Option) (*Provider, error) {
	p := &Provider{
		s:      s,
		follow: store.AnyArchive,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	schema, err := NewSchema(p)
	if err != nil {
		return nil, err
	}
	p.schema = schema

	return p, nil
}

func accessorFrom(ctx context.Context) (*accessor.Accessor, error) {
	acc, ok := ctx.Value(AccessorContextKey).(*accessor.Accessor)
	if !ok || acc == nil {
		return nil, ErrNoArchive
	}
	return acc, nil
}

func (p *Provider) Accessor() (*accessor.Accessor, error) {
	p.rw.RLock()
	defer p.rw.RUnlock()

	if p.acc == nil {
		return nil, ErrNoArchive
	}

	return p.acc, nil
}

// AddValuesTo pins the current accessor to ctx so a whole query sees one archive.
func (p *Provider) AddValuesTo(ctx context.Context) context.Context {
	acc, _ := p.Accessor()
	return context.WithValue(ctx, AccessorContextKey, acc)
}

func canonical(version string) string {
	if len(version) > 0 && version[0] != 'v' {
		version = "v" + version
	}
	return version
}

func (p *Provider) load(archive *types.Archive) error {
	acc, err := accessor.New(archive)
	if err != nil {
		return fmt.Errorf("loading %s: %w", archive.Properties.GUID, err)
	}

	p.rw.Lock()
	defer p.rw.Unlock()

	if p.follow == store.AnyArchive && p.acc != nil {
		current := p.acc.Properties().Version
		if semver.Compare(canonical(archive.Properties.Version), canonical(current)) < 0 {
			p.logger.Debug("ignoring older archive",
				zap.String("version", archive.Properties.Version),
				zap.String("current", current),
			)
			return nil
		}
	}

	p.acc = acc

	p.logger.Info("serving archive",
		zap.Stringer("guid", archive.Properties.GUID),
		zap.String("version", archive.Properties.Version),
		zap.Int("typeDefs", acc.Len()),
	)

	return nil
}

// SyncOnce loads the followed archive as it is in the store right now.
func (p *Provider) SyncOnce(ctx context.Context) error {
	guid := p.follow

	if guid == store.AnyArchive {
		props, err := p.s.List(ctx)
		if err != nil {
			return err
		}

		if len(props) == 0 {
			return ErrNoArchive
		}

		guid = props[len(props)-1].GUID
	}

	archive, err := p.s.Get(ctx, guid)
	if err != nil {
		return err
	}

	return p.load(archive)
}

// Sync loads the followed archive and then keeps up with changes to it until ctx is done.
func (p *Provider) Sync(ctx context.Context) error {
	ch, err := p.s.Watch(ctx, p.follow)
	if err != nil {
		return err
	}

	if err := p.SyncOnce(ctx); err != nil && !errors.Is(err, ErrNoArchive) {
		return err
	}

	for archive := range ch {
		if err := p.load(archive); err != nil {
			p.logger.Error("failed to load archive", zap.Error(err))
		}
	}

	return ctx.Err()
}

func (p *Provider) Schema() graphql.Schema {
	return p.schema
}

type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

func (p *Provider) Do(ctx context.Context, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         p.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        p.AddValuesTo(ctx),
	})
}
