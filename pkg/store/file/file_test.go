package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/uswitch/typearchive/pkg/store"
	"github.com/uswitch/typearchive/pkg/store/storetest"
	"github.com/uswitch/typearchive/pkg/types"
)

func newStore(format types.Format) func(*testing.T) store.Store {
	return func(t *testing.T) store.Store {
		s, err := NewFileStore(t.TempDir(), WithFormat(format))
		if err != nil {
			t.Fatal(err)
		}
		return s
	}
}

func TestConformanceJSON(t *testing.T) {
	storetest.Conformance(t, newStore(types.JSON))
}

func TestConformanceYAML(t *testing.T) {
	storetest.Conformance(t, newStore(types.YAML))
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wibble.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if num, err := s.Len(context.Background()); err != nil {
		t.Fatal(err)
	} else if num != 0 {
		t.Errorf("expected 0 archives, but got %d", num)
	}
}

func TestPersists(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewFileStore(dir, WithFormat(types.YAML))
	if err != nil {
		t.Fatal(err)
	}

	archive := storetest.Archive("6d1fdb5e-8a4f-4b71-9c5a-1f0c0c8f2a01", "wibble", "1.0")
	if err := s.Put(ctx, archive); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewFileStore(dir, WithFormat(types.YAML))
	if err != nil {
		t.Fatal(err)
	}

	got, err := reopened.Get(ctx, archive.Properties.GUID)
	if err != nil {
		t.Fatal(err)
	}

	if got.Properties.Name != "wibble" {
		t.Errorf("expected wibble, but got %s", got.Properties.Name)
	}
}
