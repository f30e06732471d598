package loader

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"rewind/internal/trace"
)

// Current schema version - increment when cachePayload format changes
const indexCacheSchemaVersion uint16 = 1

// IndexCache хранит декодированные трейсы по content-hash на диске,
// чтобы повторное открытие большого трейса не парсило JSON заново.
type IndexCache struct {
	dir string
}

type cachePayload struct {
	Schema uint16
	Events []trace.Event
}

// OpenIndexCache initializes the cache at the standard location.
func OpenIndexCache(app string) (*IndexCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "traces")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &IndexCache{dir: dir}, nil
}

// OpenIndexCacheAt is the test seam: a cache rooted at an explicit dir.
func OpenIndexCacheAt(dir string) (*IndexCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &IndexCache{dir: dir}, nil
}

func (c *IndexCache) pathFor(key [sha256.Size]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".idx")
}

// LoadCached loads the trace at path, consulting the cache first. The
// key is the sha256 of the file contents, so a rewritten trace never
// hits a stale entry. Cache failures fall back to a plain Load.
func (c *IndexCache) LoadCached(path string) ([]trace.Event, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open trace: %w", err)
	}
	key := sha256.Sum256(raw)

	if events, ok := c.lookup(key); ok {
		return events, nil
	}

	events, err := Load(path)
	if err != nil {
		return nil, err
	}
	c.store(key, events)
	return events, nil
}

func (c *IndexCache) lookup(key [sha256.Size]byte) ([]trace.Event, bool) {
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != indexCacheSchemaVersion {
		return nil, false
	}
	return payload.Events, true
}

func (c *IndexCache) store(key [sha256.Size]byte, events []trace.Event) {
	payload := cachePayload{
		Schema: indexCacheSchemaVersion,
		Events: events,
	}
	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return
	}
	// Пишем через временный файл: обрывочный кеш хуже, чем его
	// отсутствие.
	tmp := c.pathFor(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, c.pathFor(key)) //nolint:errcheck
}
