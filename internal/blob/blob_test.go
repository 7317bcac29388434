package blob

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	info, err := store.Put(ctx, "reports/day-000001.txt", strings.NewReader("line\n"), PutOptions{
		ContentType: "text/plain",
		Metadata:    map[string]string{"day": "1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 5 || info.ContentType != "text/plain" || info.ETag == "" {
		t.Fatalf("put info = %+v", info)
	}

	got, rc, err := store.Get(ctx, "reports/day-000001.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "line\n" || got.Metadata["day"] != "1" {
		t.Fatalf("round trip mismatch: %q %+v", data, got)
	}

	// Overwrite replaces content.
	if _, err := store.Put(ctx, "reports/day-000001.txt", strings.NewReader("replaced\n"), PutOptions{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	head, err := store.Head(ctx, "reports/day-000001.txt")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if head.Size != 9 {
		t.Fatalf("overwritten size = %d, want 9", head.Size)
	}

	infos, err := store.List(ctx, "reports/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("list = %d entries, want 1", len(infos))
	}

	ok, err := store.Delete(ctx, "reports/day-000001.txt")
	if err != nil || !ok {
		t.Fatalf("delete = (%v,%v), want removal", ok, err)
	}
	ok, err = store.Delete(ctx, "reports/day-000001.txt")
	if err != nil || ok {
		t.Fatalf("second delete = (%v,%v), want no-op", ok, err)
	}
}

func TestMemoryStorePresign(t *testing.T) {
	store := NewMemoryStore()
	url, err := store.PresignURL(context.Background(), "k", SignedURLOptions{})
	if err != nil || url == "" {
		t.Fatalf("presign = (%q,%v)", url, err)
	}
	if _, err := store.PresignURL(context.Background(), "k", SignedURLOptions{Method: "PUT"}); err != ErrUnsupported {
		t.Fatalf("presign PUT err = %v, want ErrUnsupported", err)
	}
}

func TestFSStoreLifecycle(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	info, err := store.Put(ctx, "reports/day-000002.txt", strings.NewReader("archived\n"), PutOptions{
		ContentType: "text/plain",
		Metadata:    map[string]string{"day": "2"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 9 || info.ETag == "" {
		t.Fatalf("put info = %+v", info)
	}

	head, err := store.Head(ctx, "reports/day-000002.txt")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	if head.ContentType != "text/plain" || head.Metadata["day"] != "2" {
		t.Fatalf("metadata lost: %+v", head)
	}

	_, rc, err := store.Get(ctx, "reports/day-000002.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, err := io.ReadAll(rc)
	_ = rc.Close()
	if err != nil || string(data) != "archived\n" {
		t.Fatalf("content = (%q,%v)", data, err)
	}

	// Overwrite is allowed: a re-archived day replaces the old object.
	if _, err := store.Put(ctx, "reports/day-000002.txt", strings.NewReader("v2\n"), PutOptions{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	head, _ = store.Head(ctx, "reports/day-000002.txt")
	if head.Size != 3 {
		t.Fatalf("overwritten size = %d, want 3", head.Size)
	}

	infos, err := store.List(ctx, "reports/")
	if err != nil || len(infos) != 1 {
		t.Fatalf("list = (%d,%v), want 1 entry", len(infos), err)
	}
	if infos[0].Key != "reports/day-000002.txt" {
		t.Fatalf("listed key = %q", infos[0].Key)
	}

	ok, err := store.Delete(ctx, "reports/day-000002.txt")
	if err != nil || !ok {
		t.Fatalf("delete = (%v,%v)", ok, err)
	}
	ok, _ = store.Delete(ctx, "reports/day-000002.txt")
	if ok {
		t.Fatal("second delete reported removal")
	}
}

func TestFSStoreRejectsTraversalKeys(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"", "../escape", "/abs", "a/../../b"} {
		if _, err := store.Put(context.Background(), key, strings.NewReader("x"), PutOptions{}); err == nil {
			t.Errorf("key %q accepted", key)
		}
	}
}

func TestOpenSelectsDriverFromEnv(t *testing.T) {
	t.Setenv("EPICORE_BLOB_DRIVER", "memory")
	store, err := Open(context.Background())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if store.Driver() != DriverMemory {
		t.Fatalf("driver = %s, want memory", store.Driver())
	}

	t.Setenv("EPICORE_BLOB_DRIVER", "fs")
	t.Setenv("EPICORE_BLOB_FS_ROOT", t.TempDir())
	store, err = Open(context.Background())
	if err != nil {
		t.Fatalf("open fs: %v", err)
	}
	if store.Driver() != DriverFilesystem {
		t.Fatalf("driver = %s, want fs", store.Driver())
	}

	t.Setenv("EPICORE_BLOB_DRIVER", "bogus")
	if _, err := Open(context.Background()); err == nil {
		t.Fatal("unknown driver accepted")
	}
}
