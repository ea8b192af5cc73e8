// Package cache implements a content-hash-keyed disk cache of compiled
// chunks, an optimization layer the driver consults before recompiling a
// source file. Correctness never depends on the cache being warm.
package cache

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// schemaVersion guards against decoding a payload written by an
// incompatible version of this package; bump it whenever CachedChunk's
// shape changes.
const schemaVersion uint16 = 1

// CachedChunk is the on-disk payload: a compiled chunk plus enough metadata
// to decide whether it is still valid for the source that produced it.
type CachedChunk struct {
	Schema     uint16
	SourceHash string
	Chunk      []byte
	Diagnostic []string // rendered compile diagnostics, informational only
}

// Disk is a directory of hash-named msgpack files under the OS cache
// directory.
type Disk struct {
	mu  sync.RWMutex
	dir string
}

// Open resolves $XDG_CACHE_HOME/<app> (falling back to $HOME/.cache/<app>)
// and returns a Disk rooted there, creating the directory if absent.
func Open(app string) (*Disk, error) {
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
	return &Disk{dir: dir}, nil
}

func (d *Disk) pathFor(hash string) string {
	return filepath.Join(d.dir, "chunks", hex.EncodeToString([]byte(hash))+".mp")
}

// Store writes payload under hash, via a temp-file-then-rename so a reader
// never observes a partially written file.
func (d *Disk) Store(hash string, payload *CachedChunk) error {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	payload.Schema = schemaVersion
	path := d.pathFor(hash)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Lookup reads back the payload stored under hash. ok is false, with a nil
// error, when nothing is cached yet or the cached schema is stale.
func (d *Disk) Lookup(hash string) (payload *CachedChunk, ok bool, err error) {
	if d == nil {
		return nil, false, nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()

	f, err := os.Open(d.pathFor(hash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var out CachedChunk
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, err
	}
	if out.Schema != schemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}
