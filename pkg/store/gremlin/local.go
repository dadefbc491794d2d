package gremlin

import (
	"context"
	"fmt"
	"strings"

	"github.com/qasaur/gremgo"
	"go.uber.org/zap"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/types"
)

const (
	SubtypeOfLabel  = "subtype_of"
	ClassifiesLabel = "classifies"

	// the server rejects frames over 65536 bytes
	maxBatchSize = 60000
)

type Executor interface {
	Execute(query string, bindings, rebindings map[string]string) (interface{}, error)
}

type Exporter struct {
	client Executor
	logger *zap.Logger
}

type Option func(*Exporter)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Exporter) { e.logger = logger }
}

func NewExporter(client Executor, opts ...Option) *Exporter {
	e := &Exporter{
		client: client,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// NewLocalServer dials a gremlin server. Connection errors are logged until ctx is done.
func NewLocalServer(ctx context.Context, url string, opts ...Option) (*Exporter, error) {
	e := NewExporter(nil, opts...)

	errs := make(chan error)
	failed := make(chan struct{})
	go e.logConnectionErrors(ctx, url, errs, failed)

	dialer := gremgo.NewDialer(url)
	g, err := gremgo.Dial(dialer, errs)
	if err != nil {
		close(failed)
		return nil, err
	}

	e.client = &g

	return e, nil
}

func (e *Exporter) logConnectionErrors(ctx context.Context, url string, errs <-chan error, stop <-chan struct{}) {
	for {
		select {
		case err := <-errs:
			e.logger.Error("lost connection to the database", zap.String("url", url), zap.Error(err))
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (e *Exporter) execute(statements Statements) ([]interface{}, error) {
	out, err := e.client.Execute(statements.String(), nil, nil)
	if err != nil {
		return nil, err
	}

	results, ok := out.([]interface{})
	if !ok {
		return nil, fmt.Errorf("failed to get results from data: %v", out)
	}

	if len(results) == 0 || results[0] == nil {
		return []interface{}{}, nil
	} else if values, ok := results[0].([]interface{}); ok {
		return values, nil
	} else if err, ok := results[0].(error); ok {
		return nil, err
	} else {
		return nil, fmt.Errorf("failed to get values from result: %v", results[0])
	}
}

// Export replaces the vertices and edges of the accessor's archive with its current type defs.
// It returns the number of statements executed.
func (e *Exporter) Export(ctx context.Context, acc *accessor.Accessor) (int, error) {
	statements := Build(acc)
	guid := acc.Properties().GUID

	executed := 0
	for _, batch := range Batch(statements, maxBatchSize) {
		if err := ctx.Err(); err != nil {
			return executed, err
		}

		if _, err := e.execute(batch); err != nil {
			return executed, fmt.Errorf("exporting %s: %w", guid, err)
		}

		executed += len(batch)
		e.logger.Debug("executed batch", zap.Stringer("archive", guid), zap.Int("statements", len(batch)))
	}

	e.logger.Info("exported archive", zap.Stringer("archive", guid), zap.Int("statements", executed))

	return executed, nil
}

// Batch groups statements so that each group renders to at most size bytes. A statement
// larger than size gets a group of its own.
func Batch(statements Statements, size int) []Statements {
	batches := []Statements{}
	current := Statements{}
	length := 0

	for _, st := range statements {
		stLen := len(st.String()) + 1

		if len(current) > 0 && length+stLen > size {
			batches = append(batches, current)
			current = Statements{}
			length = 0
		}

		current = append(current, st)
		length += stLen
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches
}

func vertex(archive types.GUID, def types.Definition) Statement {
	base := def.Base()

	st := Var("g").AddV(base.Category.String()).
		Property("archive", archive).
		Property("guid", base.GUID).
		Property("name", base.Name).
		Property("version", base.Version).
		Property("versionName", base.VersionName).
		Property("status", base.Status)

	if base.Description != "" {
		st = st.Property("description", strings.TrimSpace(base.Description))
	}

	return st
}

func edge(archive types.GUID, label string, from, to types.GUID) Statement {
	return Var("g").V().Has("archive", archive).Has("guid", from).As("a").
		V().Has("archive", archive).Has("guid", to).
		AddE(label).From("a").
		Property("archive", archive)
}

// Build renders the statements that recreate an archive's type graph: a vertex per type def,
// a subtype_of edge to each super type, an edge per relationship def between its end types
// and a classifies edge to each entity a classification can be attached to.
func Build(acc *accessor.Accessor) Statements {
	archive := acc.Properties().GUID
	defs := acc.All()

	statements := Statements{
		Var("g").V().Has("archive", archive).Drop().Iterate(),
	}

	for _, def := range defs {
		statements = append(statements, vertex(archive, def))
	}

	for _, def := range defs {
		base := def.Base()

		if base.SuperType != nil {
			statements = append(statements, edge(archive, SubtypeOfLabel, base.GUID, base.SuperType.GUID))
		}

		switch typ := def.(type) {
		case *types.RelationshipDef:
			statements = append(statements,
				edge(archive, typ.Name, typ.EndDef1.EntityType.GUID, typ.EndDef2.EntityType.GUID).
					Property("guid", typ.GUID).
					Property("end1", typ.EndDef1.AttributeName).
					Property("end2", typ.EndDef2.AttributeName).
					Property("propagate", typ.PropagationRule),
			)
		case *types.ClassificationDef:
			for _, valid := range typ.ValidEntityDefs {
				statements = append(statements, edge(archive, ClassifiesLabel, typ.GUID, valid.GUID))
			}
		}
	}

	return statements
}
