package gremlin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/uswitch/typearchive/pkg/accessor"
	"github.com/uswitch/typearchive/pkg/releases"
)

type recordingExecutor struct {
	queries []string
	err     error
}

func (r *recordingExecutor) Execute(query string, _, _ map[string]string) (interface{}, error) {
	r.queries = append(r.queries, query)
	if r.err != nil {
		return []interface{}{r.err}, nil
	}
	return []interface{}{nil}, nil
}

func accessorFor(t *testing.T) *accessor.Accessor {
	t.Helper()

	archive, err := releases.Release1_0.Archive()
	if err != nil {
		t.Fatal(err)
	}

	acc, err := accessor.New(archive)
	if err != nil {
		t.Fatal(err)
	}

	return acc
}

func TestBuild(t *testing.T) {
	acc := accessorFor(t)
	statements := Build(acc)
	guid := acc.Properties().GUID

	if expected := fmt.Sprintf("g.V().has('archive', '%s').drop().iterate()", guid); statements[0].String() != expected {
		t.Errorf("expected '%s', but got '%s'", expected, statements[0].String())
	}

	vertices := 0
	subtypes := 0
	for _, st := range statements {
		s := st.String()
		if strings.HasPrefix(s, "g.addV(") {
			vertices++
		}
		if strings.Contains(s, "addE('subtype_of')") {
			subtypes++
		}
	}

	if vertices != acc.Len() {
		t.Errorf("expected %d vertices, but got %d", acc.Len(), vertices)
	}

	expectedSubtypes := 0
	for _, def := range acc.All() {
		if def.Base().SuperType != nil {
			expectedSubtypes++
		}
	}
	if subtypes != expectedSubtypes {
		t.Errorf("expected %d subtype_of edges, but got %d", expectedSubtypes, subtypes)
	}

	asset, _ := acc.EntityDef("Asset")
	referenceable, _ := acc.EntityDef("Referenceable")

	assetEdge := edge(guid, SubtypeOfLabel, asset.GUID, referenceable.GUID).String()
	if !strings.Contains(statements.String(), assetEdge) {
		t.Errorf("expected statements to contain '%s'", assetEdge)
	}

	memento, _ := acc.ClassificationDef("Memento")
	if !strings.Contains(statements.String(), edge(guid, ClassifiesLabel, memento.GUID, referenceable.GUID).String()) {
		t.Error("expected Memento to classify Referenceable")
	}
}

func TestBatch(t *testing.T) {
	statements := Statements{Var("aaaa"), Var("bbbb"), Var("cccc"), Var(strings.Repeat("d", 20))}

	batches := Batch(statements, 10)

	if expected := 3; len(batches) != expected {
		t.Fatalf("expected %d batches, but got %d", expected, len(batches))
	}
	if len(batches[0]) != 2 || len(batches[1]) != 1 || len(batches[2]) != 1 {
		t.Errorf("unexpected batch sizes: %d, %d, %d", len(batches[0]), len(batches[1]), len(batches[2]))
	}
}

func TestExport(t *testing.T) {
	acc := accessorFor(t)
	exec := &recordingExecutor{}

	n, err := NewExporter(exec).Export(context.Background(), acc)
	if err != nil {
		t.Fatal(err)
	}

	if expected := len(Build(acc)); n != expected {
		t.Errorf("expected %d statements, but got %d", expected, n)
	}

	if len(exec.queries) == 0 {
		t.Error("expected at least one query to be executed")
	}
}

func TestExportError(t *testing.T) {
	exec := &recordingExecutor{err: errors.New("boom")}

	if _, err := NewExporter(exec).Export(context.Background(), accessorFor(t)); err == nil {
		t.Error("expected an error, but got nil")
	}
}

func TestExportCancelled(t *testing.T) {
	exec := &recordingExecutor{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewExporter(exec).Export(ctx, accessorFor(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, but got %v", err)
	}
	if len(exec.queries) != 0 {
		t.Errorf("expected no queries, but got %d", len(exec.queries))
	}
}

func TestConnectionErrorsStopWithContext(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := NewExporter(nil, WithLogger(zap.New(core)))

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error)
	done := make(chan struct{})

	go func() {
		e.logConnectionErrors(ctx, "ws://localhost:8182", errs, nil)
		close(done)
	}()

	errs <- errors.New("wibble")
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected the error logger to stop when the context is done")
	}

	if expected := 1; logs.Len() != expected {
		t.Errorf("expected %d logged error, but got %d", expected, logs.Len())
	}
}

func TestConnectionErrorsStopWhenDialFails(t *testing.T) {
	e := NewExporter(nil)

	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		e.logConnectionErrors(context.Background(), "ws://localhost:8182", make(chan error), stop)
		close(done)
	}()

	close(stop)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected the error logger to stop")
	}
}
