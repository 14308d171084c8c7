package driver

import (
	"testing"

	"github.com/l4u/elixir/internal/core"
	"github.com/l4u/elixir/internal/project"
	"github.com/l4u/elixir/internal/treewire"
)

func TestDiskCachePutGet(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("elx-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	stmts := []*core.Node{core.NewInt(3, 42)}
	key := project.HashBytes([]byte("one"))
	in := &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   "f.ex",
		Units: []CachedUnit{
			{Module: "M", Line: 3, Tree: treewire.FromCore("f.ex", "M", stmts)},
		},
		Diags: []CachedDiag{
			{Severity: 1, Code: 3901, Message: "deprecated", Start: 4, End: 9},
		},
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	ok, err := cache.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if out.Schema != diskCacheSchemaVersion || out.Path != "f.ex" {
		t.Errorf("payload header = %+v", out)
	}
	if len(out.Units) != 1 || out.Units[0].Module != "M" || out.Units[0].Line != 3 {
		t.Fatalf("units = %+v", out.Units)
	}
	decoded, err := out.Units[0].Tree.Core()
	if err != nil {
		t.Fatalf("Core: %v", err)
	}
	if got := core.PrintStmts(decoded); got != "42" {
		t.Errorf("tree = %s", got)
	}
	if len(out.Diags) != 1 || out.Diags[0].Message != "deprecated" || out.Diags[0].End != 9 {
		t.Errorf("diags = %+v", out.Diags)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("elx-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	var out DiskPayload
	ok, err := cache.Get(project.HashBytes([]byte("absent")), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("hit on an empty cache")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("elx-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}

	key := project.HashBytes([]byte("k"))
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}

	var out DiskPayload
	ok, err := cache.Get(key, &out)
	if err != nil || ok {
		t.Fatalf("after drop: ok=%v err=%v", ok, err)
	}

	// The cache directory comes back on the next write.
	if err := cache.Put(key, &DiskPayload{Schema: diskCacheSchemaVersion}); err != nil {
		t.Fatalf("Put after drop: %v", err)
	}
	ok, err = cache.Get(key, &out)
	if err != nil || !ok {
		t.Fatalf("Get after re-put: ok=%v err=%v", ok, err)
	}
}

func TestDiskCacheNilReceiver(t *testing.T) {
	var cache *DiskCache
	key := project.HashBytes([]byte("k"))
	if err := cache.Put(key, &DiskPayload{}); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	ok, err := cache.Get(key, &DiskPayload{})
	if err != nil || ok {
		t.Errorf("nil Get: ok=%v err=%v", ok, err)
	}
	if err := cache.DropAll(); err != nil {
		t.Errorf("nil DropAll: %v", err)
	}
}
