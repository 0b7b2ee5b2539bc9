package vfs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/sys/unix"
)

// TestPassthrough_ReadFile exercises the terminal layer against a real file:
// open, positioned reads, fake-async submit/collect, close.
func TestPassthrough_ReadFile(t *testing.T) {
	content := []byte("the quick brown fox jumps over the lazy dog")
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p := NewPassthrough()
	ctx := context.Background()

	h, err := p.OpenAt(ctx, nil, path, unix.O_RDONLY, 0644)
	if err != nil {
		t.Fatalf("openat failed: %v", err)
	}
	defer p.Close(h)

	buf := make([]byte, 16)
	n, err := p.Pread(ctx, h, buf, 0)
	if err != nil {
		t.Fatalf("pread failed: %v", err)
	}
	if !bytes.Equal(buf[:n], content[:n]) {
		t.Fatalf("pread bytes = %q, want %q", buf[:n], content[:n])
	}

	// Positioned read does not disturb sequential state.
	n, err = p.Pread(ctx, h, buf, 10)
	if err != nil {
		t.Fatalf("pread at offset failed: %v", err)
	}
	if !bytes.Equal(buf[:n], content[10:10+n]) {
		t.Fatalf("offset pread bytes = %q, want %q", buf[:n], content[10:10+n])
	}

	req, err := p.PreadSubmit(ctx, h, buf, 4)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if req.State() != RequestDone {
		t.Fatalf("request state = %v, want done", req.State())
	}
	n, err = p.PreadCollect(req)
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	if !bytes.Equal(buf[:n], content[4:4+n]) {
		t.Fatalf("collected bytes = %q, want %q", buf[:n], content[4:4+n])
	}
}

// TestPassthrough_OpenAtRelative verifies opening relative to a directory
// handle.
func TestPassthrough_OpenAtRelative(t *testing.T) {
	dirPath := t.TempDir()
	if err := os.WriteFile(filepath.Join(dirPath, "nested.bin"), []byte("hello"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p := NewPassthrough()
	ctx := context.Background()

	dir, err := p.OpenAt(ctx, nil, dirPath, unix.O_RDONLY|unix.O_DIRECTORY, 0755)
	if err != nil {
		t.Fatalf("open dir failed: %v", err)
	}
	defer p.Close(dir)

	h, err := p.OpenAt(ctx, dir, "nested.bin", unix.O_RDONLY, 0644)
	if err != nil {
		t.Fatalf("open relative failed: %v", err)
	}
	defer p.Close(h)

	if want := filepath.Join(dirPath, "nested.bin"); h.Path != want {
		t.Fatalf("handle path = %q, want %q", h.Path, want)
	}

	buf := make([]byte, 8)
	n, err := p.Pread(ctx, h, buf, 0)
	if err != nil {
		t.Fatalf("pread failed: %v", err)
	}
	if string(buf[:n]) != "hello" {
		t.Fatalf("read %q, want %q", buf[:n], "hello")
	}
}

// TestPassthrough_OpenMissing verifies error propagation from the syscall.
func TestPassthrough_OpenMissing(t *testing.T) {
	p := NewPassthrough()

	_, err := p.OpenAt(context.Background(), nil, filepath.Join(t.TempDir(), "ghost"), unix.O_RDONLY, 0)
	if err == nil {
		t.Fatal("open of missing file should fail")
	}
}

// TestPassthrough_ContextCancelled verifies the context gate fires before
// the syscall.
func TestPassthrough_ContextCancelled(t *testing.T) {
	p := NewPassthrough()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.OpenAt(ctx, nil, "/etc/hostname", unix.O_RDONLY, 0); err == nil {
		t.Fatal("open with cancelled context should fail")
	}
}
