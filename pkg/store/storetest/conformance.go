package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/uswitch/typearchive/pkg/store"
	"github.com/uswitch/typearchive/pkg/types"
)

func Conformance(t *testing.T, newStore func(*testing.T) store.Store) {
	tests := map[string]func(*testing.T, store.Store){
		"Len":         TestLen,
		"PutAndGet":   TestPutAndGet,
		"PutReplaces": TestPutReplaces,
		"PutInvalid":  TestPutInvalid,
		"GetNotFound": TestGetNotFound,
		"List":        TestList,

		"WatchByGUID": TestWatchByGUID,
		"WatchAny":    TestWatchAny,
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			test(t, s)
		})
	}
}

var creationDate = time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)

// Archive returns an archive with no definitions, enough to exercise a store.
func Archive(guid, name, version string) *types.Archive {
	return &types.Archive{
		Properties: types.ArchiveProperties{
			GUID:              types.GUID(guid),
			Name:              name,
			Description:       name + " archive",
			Type:              types.ContentPack,
			Version:           version,
			OriginatorName:    "storetest",
			OriginatorLicense: "Apache-2.0",
			CreationDate:      creationDate,
		},
	}
}

const (
	guid1 = "6d1fdb5e-8a4f-4b71-9c5a-1f0c0c8f2a01"
	guid2 = "2f4a9b6e-3c1d-4e8f-a7b2-5d6e7f8a9b02"
	guid3 = "9c8b7a6d-5e4f-4a3b-8c2d-1e0f9a8b7c03"
)

func TestLen(t *testing.T, s store.Store) {
	ctx := context.Background()

	if num, err := s.Len(ctx); err != nil {
		t.Error(err)
	} else if num != 0 {
		t.Errorf("Store should be empty, has %d", num)
	}

	if err := s.Put(ctx, Archive(guid1, "wibble", "1.0")); err != nil {
		t.Fatal(err)
	}

	if num, err := s.Len(ctx); err != nil {
		t.Error(err)
	} else if num != 1 {
		t.Errorf("Store should have 1 archive, has %d", num)
	}
}

func TestPutAndGet(t *testing.T, s store.Store) {
	ctx := context.Background()
	archive := Archive(guid1, "wibble", "1.0")
	archive.Properties.Dependencies = []types.GUID{guid2}

	if err := s.Put(ctx, archive); err != nil {
		t.Fatalf("Couldn't put in store: %v", err)
	}

	got, err := s.Get(ctx, guid1)
	if err != nil {
		t.Fatalf("Couldn't get from store: %v", err)
	}

	if diff := cmp.Diff(archive, got); diff != "" {
		t.Errorf("archive mismatch (-want +got):\n%s", diff)
	}
}

func TestPutReplaces(t *testing.T, s store.Store) {
	ctx := context.Background()

	if err := s.Put(ctx, Archive(guid1, "wibble", "1.0")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, Archive(guid1, "wibble", "1.1")); err != nil {
		t.Fatal(err)
	}

	if num, _ := s.Len(ctx); num != 1 {
		t.Errorf("expected 1 archive, but got %d", num)
	}

	if got, err := s.Get(ctx, guid1); err != nil {
		t.Fatal(err)
	} else if got.Properties.Version != "1.1" {
		t.Errorf("expected version 1.1, but got %s", got.Properties.Version)
	}
}

func TestPutInvalid(t *testing.T, s store.Store) {
	ctx := context.Background()

	for _, guid := range []string{"", "not-a-guid", string(store.AnyArchive)} {
		if err := s.Put(ctx, Archive(guid, "wibble", "1.0")); !errors.Is(err, store.ErrInvalidArchive) {
			t.Errorf("expected ErrInvalidArchive for '%s', but got %v", guid, err)
		}
	}

	if err := s.Put(ctx, nil); !errors.Is(err, store.ErrInvalidArchive) {
		t.Errorf("expected ErrInvalidArchive for nil, but got %v", err)
	}

	nullEntity := Archive(guid1, "wibble", "1.0")
	nullEntity.TypeStore.EntityDefs = []*types.EntityDef{nil}

	if err := s.Put(ctx, nullEntity); !errors.Is(err, store.ErrInvalidArchive) {
		t.Errorf("expected ErrInvalidArchive for a null entity def, but got %v", err)
	}
	if _, err := s.Get(ctx, guid1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected the invalid archive not to be stored, but got %v", err)
	}
}

func TestGetNotFound(t *testing.T, s store.Store) {
	if _, err := s.Get(context.Background(), guid3); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, but got %v", err)
	}
}

func TestList(t *testing.T, s store.Store) {
	ctx := context.Background()

	for _, archive := range []*types.Archive{
		Archive(guid1, "wibble", "1.10"),
		Archive(guid2, "bibble", "1.2"),
		Archive(guid3, "nibble", "1.2"),
	} {
		if err := s.Put(ctx, archive); err != nil {
			t.Fatal(err)
		}
	}

	props, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}

	got := []string{}
	for _, p := range props {
		got = append(got, p.Name)
	}

	if diff := cmp.Diff([]string{"bibble", "nibble", "wibble"}, got); diff != "" {
		t.Errorf("list order mismatch (-want +got):\n%s", diff)
	}
}

func appendFromChannel(ch chan *types.Archive, list *[]*types.Archive, wg *sync.WaitGroup) {
	for archive := range ch {
		*list = append(*list, archive)
	}
	wg.Done()
}

func TestWatchByGUID(t *testing.T, s store.Store) {
	closedWG := sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())

	closedWG.Add(2)

	list1 := []*types.Archive{}
	if ch, err := s.Watch(ctx, guid1); err != nil {
		t.Fatalf("Couldn't watch archive: %v", err)
	} else {
		go appendFromChannel(ch, &list1, &closedWG)
	}

	list2 := []*types.Archive{}
	if ch, err := s.Watch(ctx, guid2); err != nil {
		t.Fatalf("Couldn't watch archive: %v", err)
	} else {
		go appendFromChannel(ch, &list2, &closedWG)
	}

	putCtx := context.Background()

	if err := s.Put(putCtx, Archive(guid1, "wibble", "1.0")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(putCtx, Archive(guid1, "wibble", "1.1")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(putCtx, Archive(guid3, "nibble", "1.0")); err != nil {
		t.Fatal(err)
	}

	cancel()
	closedWG.Wait()

	if expected := 2; len(list1) != expected {
		t.Errorf("Expected there to be %d archives, but it was %d", expected, len(list1))
	}
	if expected := 0; len(list2) != expected {
		t.Errorf("Expected there to be %d archives, but it was %d", expected, len(list2))
	}
}

func TestWatchAny(t *testing.T, s store.Store) {
	closedWG := sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())

	closedWG.Add(1)

	list := []*types.Archive{}
	if ch, err := s.Watch(ctx, store.AnyArchive); err != nil {
		t.Fatalf("Couldn't watch archives: %v", err)
	} else {
		go appendFromChannel(ch, &list, &closedWG)
	}

	putCtx := context.Background()

	if err := s.Put(putCtx, Archive(guid1, "wibble", "1.0")); err != nil {
		t.Fatal(err)
	}
	if err := s.Put(putCtx, Archive(guid2, "bibble", "1.0")); err != nil {
		t.Fatal(err)
	}

	cancel()
	closedWG.Wait()

	if expected := 2; len(list) != expected {
		t.Errorf("Expected there to be %d archives, but it was %d", expected, len(list))
	}
}
