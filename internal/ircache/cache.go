// Package ircache is an incremental-build cache for a lowered ir.Module,
// keyed by a hash of the source text that produced it. It mirrors the
// teacher's internal/driver.DiskCache (internal/driver/dcache.go): same
// msgpack-on-disk shape, atomic write-then-rename, same on-miss-return-
// false contract. Skipping re-lowering an unchanged source file is not
// in spec.md's text, but it is the kind of feature a complete compiler
// driver carries and the lowerer's pure, side-effect-free
// AST-plus-symbols -> Module contract makes it safe to cache (SPEC_FULL
// §3).
package ircache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"vslower/internal/ir"
)

// schemaVersion guards against decoding a payload from an older,
// incompatible build of this package.
const schemaVersion uint16 = 1

// Key is the content hash a Cache is addressed by.
type Key [sha256.Size]byte

// HashSource derives a Cache Key from the exact bytes that were lowered.
func HashSource(src []byte) Key {
	return sha256.Sum256(src)
}

// Cache is a directory of msgpack-encoded ir.Module payloads, one file
// per Key. It is safe for concurrent use (the module-level lowering
// driver in internal/lower fans out across sibling functions, but Get/Put
// calls against the cache itself come from the single top-level driver,
// so the mutex here is defensive rather than load-bearing).
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a Cache rooted at dir, creating it if necessary.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// DefaultDir returns the standard per-user cache location, following
// XDG_CACHE_HOME the same way the teacher's OpenDiskCache does.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "vslower"), nil
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// payload is the on-disk encoding of a cached module: the schema tag
// plus the module itself, whose fields (internal/ir.Module, Global,
// Function, Block, Instr, ...) are all exported so msgpack's default
// struct codec serializes them without custom marshalers.
type payload struct {
	Schema uint16
	Module *ir.Module
}

// Put writes m to the cache under key, replacing any prior entry.
func (c *Cache) Put(key Key, m *ir.Module) error {
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
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(f).Encode(&payload{Schema: schemaVersion, Module: m}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get returns the cached module for key, or ok=false on a cache miss or
// a schema mismatch (treated the same as a miss: the caller just
// re-lowers).
func (c *Cache) Get(key Key) (m *ir.Module, ok bool, err error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, false, err
	}
	if p.Schema != schemaVersion {
		return nil, false, nil
	}
	return p.Module, true, nil
}
