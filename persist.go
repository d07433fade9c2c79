package snapcache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/unkn0wn-root/snapcache/internal/fsutil"
	"github.com/unkn0wn-root/snapcache/internal/wire"
)

// FileSuffix is appended to every snapshot file name.
const FileSuffix = ".cache"

func cacheDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}
	return dir, nil
}

// schemaTag names the concrete key/value types a snapshot was written
// with. Load rejects a tag mismatch before decoding any entry.
func schemaTag[K comparable, V any]() string {
	var k K
	var v V
	return fmt.Sprintf("%T|%T", k, v)
}

func snapshotPath(dir, name string) string {
	return filepath.Join(dir, name+FileSuffix)
}

// Save encodes the live entries (expired ones are filtered by the same
// lazy check Get uses) and writes them atomically to <dir>/<name>.cache.
func (c *cache[K, V]) Save(name string) error {
	dir, err := cacheDir(c.dir)
	if err != nil {
		return err
	}

	entries := c.Snapshot()
	items := make([]wire.Item, 0, len(entries))
	for _, e := range entries {
		kb, err := c.keyCodec.Encode(e.Key)
		if err != nil {
			return &SnapshotError{Name: name, Op: OpEncode, Err: err}
		}
		vb, err := c.valCodec.Encode(e.Value)
		if err != nil {
			return &SnapshotError{Name: name, Op: OpEncode, Err: err}
		}
		items = append(items, wire.Item{
			Key:       kb,
			ExpiresAt: e.ExpiresAt.UnixNano(),
			Payload:   vb,
		})
	}

	blob, err := wire.Encode(schemaTag[K, V](), items)
	if err != nil {
		return &SnapshotError{Name: name, Op: OpEncode, Err: err}
	}
	if err := fsutil.WriteFileAtomic(snapshotPath(dir, name), blob, 0o600); err != nil {
		return &SnapshotError{Name: name, Op: OpWrite, Err: err}
	}

	c.hooks.SnapshotSaved(name, len(items))
	c.log.Debug("snapshot saved", Fields{"name": name, "entries": len(items)})
	return nil
}

// Load reads <dir>/<name>.cache and reconstructs a cache from it. The
// snapshot is fully decoded before the cache is built, so a failure never
// leaves a partially filled store behind. Entries keep their original
// deadlines; already-stale ones are retained until a read collects them.
func Load[K comparable, V any](name string, opts Options[K, V]) (Cache[K, V], error) {
	entries, err := ReadSnapshot(name, opts)
	if err != nil {
		return nil, err
	}
	return Restore(opts, entries)
}

// ReadSnapshot decodes the named snapshot file into entries without
// building a cache.
func ReadSnapshot[K comparable, V any](name string, opts Options[K, V]) ([]Entry[K, V], error) {
	if opts.KeyCodec == nil || opts.ValueCodec == nil {
		return nil, fmt.Errorf("snapcache: key and value codecs are required")
	}

	dir, err := cacheDir(opts.Dir)
	if err != nil {
		return nil, err
	}

	blob, err := os.ReadFile(snapshotPath(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotNotFound, err)
	}
	if err != nil {
		return nil, &SnapshotError{Name: name, Op: OpRead, Err: err}
	}

	tag, items, err := wire.Decode(blob)
	if err != nil {
		return nil, &SnapshotError{Name: name, Op: OpDecode, Err: err}
	}
	if want := schemaTag[K, V](); tag != want {
		return nil, &SnapshotError{
			Name: name,
			Op:   OpDecode,
			Err:  fmt.Errorf("schema mismatch: snapshot holds %q, want %q", tag, want),
		}
	}

	entries := make([]Entry[K, V], 0, len(items))
	for _, it := range items {
		k, err := opts.KeyCodec.Decode(it.Key)
		if err != nil {
			return nil, &SnapshotError{Name: name, Op: OpDecode, Err: err}
		}
		v, err := opts.ValueCodec.Decode(it.Payload)
		if err != nil {
			return nil, &SnapshotError{Name: name, Op: OpDecode, Err: err}
		}
		entries = append(entries, Entry[K, V]{
			Key:       k,
			Value:     v,
			ExpiresAt: time.Unix(0, it.ExpiresAt),
		})
	}
	return entries, nil
}

// Restore builds a cache from in-memory entries: fresh tracker, fresh (or
// caller-provided empty) store, direct inserts preserving each ExpiresAt.
func Restore[K comparable, V any](opts Options[K, V], entries []Entry[K, V]) (Cache[K, V], error) {
	c, err := newCache(opts)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		c.restore(e)
	}
	return c, nil
}

// RemoveFromDisk deletes the named snapshot. An absent file is a no-op,
// not an error. dir "" resolves the platform cache directory.
func RemoveFromDisk(name, dir string) error {
	d, err := cacheDir(dir)
	if err != nil {
		return err
	}
	if err := os.Remove(snapshotPath(d, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
