package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/l4u/elixir/internal/buildpipeline"
	"github.com/l4u/elixir/internal/diag"
	"github.com/l4u/elixir/internal/project"
	"github.com/l4u/elixir/internal/source"
	"github.com/l4u/elixir/internal/treewire"
)

// Increment when DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores lowered trees on disk keyed by source digest, so an
// unchanged file skips parsing and lowering entirely.
// Thread-safe for concurrent access. A nil *DiskCache is inert.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached compilation: every unit the file produced
// plus the non-error diagnostics it emitted.
type DiskPayload struct {
	Schema uint16
	Path   string
	Units  []CachedUnit
	Diags  []CachedDiag
}

// CachedUnit is one lowered unit in wire form.
type CachedUnit struct {
	Module string
	Line   uint32
	Tree   *treewire.Tree
}

// CachedDiag is a warning or note worth replaying on a cache hit.
// Spans keep only their offsets; the file identity comes from the
// lookup itself.
type CachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
}

// OpenDiskCache initializes a disk cache at the standard location:
// $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "units", hexKey+".mp")
}

// Put serializes a payload and writes it atomically.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), p)
}

// Get reads a payload. The false return distinguishes a clean miss
// from a read error.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey derives the lookup key from the source digest and the
// options that change lowering output.
func cacheKey(file *source.File, opts Options) project.Digest {
	mode := "standard"
	if opts.Internal {
		mode = "internal"
	}
	return project.Combine(project.Digest(file.Hash), project.HashBytes([]byte(mode)))
}

// tryCache rebuilds the result from a cached payload. Any decode
// problem, stale schema included, reads as a miss and the caller
// compiles fresh.
func tryCache(file *source.File, opts Options, res *Result) bool {
	if opts.Cache == nil {
		return false
	}
	start := time.Now()

	var payload DiskPayload
	ok, err := opts.Cache.Get(cacheKey(file, opts), &payload)
	if err != nil || !ok || payload.Schema != diskCacheSchemaVersion {
		return false
	}

	units := make([]Unit, 0, len(payload.Units))
	for _, cu := range payload.Units {
		if cu.Tree == nil {
			return false
		}
		stmts, err := cu.Tree.Core()
		if err != nil {
			return false
		}
		units = append(units, Unit{Module: cu.Module, Line: cu.Line, Stmts: stmts, Cached: true})
	}
	for _, d := range payload.Diags {
		res.Bag.Add(diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: file.ID, Start: d.Start, End: d.End},
		})
	}
	res.Units = units

	elapsed := time.Since(start)
	res.Timings.Add(buildpipeline.StageCache, elapsed)
	buildpipeline.Emit(opts.Sink, buildpipeline.Event{
		Unit:    file.Path,
		Stage:   buildpipeline.StageCache,
		Status:  buildpipeline.StatusDone,
		Elapsed: elapsed,
	})
	return true
}

// storeCache records a clean compilation. Runs with errors are never
// cached; a failed write never fails the build.
func storeCache(file *source.File, opts Options, res *Result) {
	if opts.Cache == nil || res.Bag.HasErrors() {
		return
	}

	payload := DiskPayload{Schema: diskCacheSchemaVersion, Path: file.Path}
	for i := range res.Units {
		u := &res.Units[i]
		payload.Units = append(payload.Units, CachedUnit{
			Module: u.Module,
			Line:   u.Line,
			Tree:   treewire.FromCore(file.Path, u.Module, u.Stmts),
		})
	}
	for _, d := range res.Bag.Items() {
		payload.Diags = append(payload.Diags, CachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		})
	}
	_ = opts.Cache.Put(cacheKey(file, opts), &payload)
}
