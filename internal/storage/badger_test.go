package storage

import (
	"bytes"
	"errors"
	"testing"
)

func TestPutGetDelete(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	data := []byte("compressed bytes")
	if err := store.Put("report.txt.huf.zip", data); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get("report.txt.huf.zip")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}

	if err := store.Delete("report.txt.huf.zip"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get("report.txt.huf.zip"); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
}

func TestGetMissing(t *testing.T) {
	store, err := NewBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	if _, err := store.Get("never-stored"); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
