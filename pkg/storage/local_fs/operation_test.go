package local_fs

import (
	"context"
	"testing"
)

func TestLocalFSRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs, err := NewClient(&Config{SavePath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	itemID := "0123456789abcdef0123456789abcdef"
	content := []byte("hello content")

	exists, err := fs.Exists(ctx, itemID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("item should not exist before write")
	}

	if err := fs.Write(ctx, itemID, content); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	exists, err = fs.Exists(ctx, itemID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("item should exist after write")
	}

	got, err := fs.Read(ctx, itemID)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("Read = %q, want %q", got, content)
	}

	if err := fs.Delete(ctx, itemID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	exists, _ = fs.Exists(ctx, itemID)
	if exists {
		t.Error("item should not exist after delete")
	}

	// Delete 不存在的条目应当静默成功
	if err := fs.Delete(ctx, itemID); err != nil {
		t.Errorf("Delete of missing item should be a no-op, got %v", err)
	}
}

func TestLocalFSShortID(t *testing.T) {
	ctx := context.Background()
	fs, err := NewClient(&Config{SavePath: t.TempDir()})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	if err := fs.Write(ctx, "x", []byte("v")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := fs.Read(ctx, "x")
	if err != nil || string(got) != "v" {
		t.Fatalf("Read = %q, %v", got, err)
	}
}
