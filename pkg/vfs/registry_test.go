package vfs

import (
	"context"
	"errors"
	"testing"
)

// tagLayer is a trivial pass-through layer that prepends its tag to a shared
// trace on every read, so chain composition order is observable.
type tagLayer struct {
	tag   string
	trace *[]string
	next  Layer
}

func (l *tagLayer) OpenAt(ctx context.Context, dir *Handle, name string, flags int, mode uint32) (*Handle, error) {
	return l.next.OpenAt(ctx, dir, name, flags, mode)
}

func (l *tagLayer) Pread(ctx context.Context, h *Handle, buf []byte, offset int64) (int, error) {
	*l.trace = append(*l.trace, l.tag)
	return l.next.Pread(ctx, h, buf, offset)
}

func (l *tagLayer) PreadSubmit(ctx context.Context, h *Handle, buf []byte, offset int64) (*Request, error) {
	req := NewRequest()
	n, err := l.Pread(ctx, h, buf, offset)
	req.Resolve(n, err)
	return req, nil
}

func (l *tagLayer) PreadCollect(req *Request) (int, error) {
	return req.Collect()
}

func (l *tagLayer) Close(h *Handle) error {
	return l.next.Close(h)
}

// nullLayer is a terminal layer that satisfies every read with zero bytes.
type nullLayer struct{}

func (nullLayer) OpenAt(ctx context.Context, dir *Handle, name string, flags int, mode uint32) (*Handle, error) {
	return &Handle{Fd: -1, Path: name, Flags: flags, Mode: mode}, nil
}

func (nullLayer) Pread(ctx context.Context, h *Handle, buf []byte, offset int64) (int, error) {
	return 0, nil
}

func (nullLayer) PreadSubmit(ctx context.Context, h *Handle, buf []byte, offset int64) (*Request, error) {
	req := NewRequest()
	req.Resolve(0, nil)
	return req, nil
}

func (nullLayer) PreadCollect(req *Request) (int, error) {
	return req.Collect()
}

func (nullLayer) Close(h *Handle) error {
	return nil
}

func tagConstructor(tag string, trace *[]string) Constructor {
	return func(next Layer, options map[string]any) (Layer, error) {
		return &tagLayer{tag: tag, trace: trace, next: next}, nil
	}
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()
	trace := []string{}

	if err := reg.Register("a", tagConstructor("a", &trace)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := reg.Register("a", tagConstructor("a", &trace)); err == nil {
		t.Fatal("duplicate registration should fail")
	}

	if err := reg.Register("", tagConstructor("x", &trace)); err == nil {
		t.Fatal("empty name should fail")
	}

	if err := reg.Register("b", nil); err == nil {
		t.Fatal("nil constructor should fail")
	}
}

func TestRegistry_ListLayers(t *testing.T) {
	reg := NewRegistry()
	trace := []string{}

	if got := reg.ListLayers(); len(got) != 0 {
		t.Fatalf("fresh registry lists %v, want none", got)
	}

	for _, tag := range []string{"a", "b"} {
		if err := reg.Register(tag, tagConstructor(tag, &trace)); err != nil {
			t.Fatalf("register %q failed: %v", tag, err)
		}
	}

	names := reg.ListLayers()
	if len(names) != 2 {
		t.Fatalf("ListLayers = %v, want 2 names", names)
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Fatalf("ListLayers = %v, want a and b", names)
	}

	// The returned slice is a copy: mutating it must not corrupt the registry.
	names[0] = "mangled"
	if _, err := reg.Lookup("a"); err != nil {
		t.Fatalf("lookup after mutation failed: %v", err)
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Lookup("missing")
	if !errors.Is(err, ErrLayerNotFound) {
		t.Fatalf("lookup error = %v, want ErrLayerNotFound", err)
	}
}

func TestRegistry_BuildOrder(t *testing.T) {
	reg := NewRegistry()
	trace := []string{}

	for _, tag := range []string{"outer", "inner"} {
		if err := reg.Register(tag, tagConstructor(tag, &trace)); err != nil {
			t.Fatalf("register %q failed: %v", tag, err)
		}
	}

	chain, err := reg.Build([]string{"outer", "inner"}, nullLayer{}, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if _, err := chain.Pread(context.Background(), &Handle{}, make([]byte, 8), 0); err != nil {
		t.Fatalf("pread failed: %v", err)
	}

	if len(trace) != 2 || trace[0] != "outer" || trace[1] != "inner" {
		t.Fatalf("chain order = %v, want [outer inner]", trace)
	}
}

func TestRegistry_BuildErrors(t *testing.T) {
	reg := NewRegistry()
	trace := []string{}

	if err := reg.Register("a", tagConstructor("a", &trace)); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := reg.Build([]string{"a", "ghost"}, nullLayer{}, nil); !errors.Is(err, ErrLayerNotFound) {
		t.Fatalf("build with unknown layer = %v, want ErrLayerNotFound", err)
	}

	if _, err := reg.Build([]string{"a"}, nil, nil); err == nil {
		t.Fatal("build without terminal layer should fail")
	}
}
