package fastfuels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fastfuels-io/fastfuels-client/internal/constants"
	"github.com/nats-io/nats.go"
)

// Static errors for err113 compliance.
var (
	ErrCacheKeyNotFound   = errors.New("key not found")
	ErrCacheEntryExpired  = errors.New("entry expired")
	ErrCacheValueTooLarge = errors.New("value exceeds maximum cache size")
	ErrNATSURLRequired    = errors.New("NATS URL is required")
)

// CacheEntry is a single cached value with its expiry metadata.
type CacheEntry struct {
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
	ETag      string    `json:"etag,omitempty"`
}

// Expired reports whether the entry has passed its expiry time.
func (e *CacheEntry) Expired() bool {
	return time.Now().After(e.ExpiresAt)
}

// Cache is a pluggable backend for resource snapshot caching.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheOptions are common options applied to any cache backend.
type CacheOptions struct {
	// DefaultTTL applies when a Set does not carry an explicit TTL.
	DefaultTTL time.Duration

	// MaxValueSize rejects values larger than this many bytes.
	MaxValueSize int
}

// DefaultCacheOptions returns the default cache options.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		DefaultTTL:   constants.DefaultCacheTTL,
		MaxValueSize: constants.MaxCacheValueSize,
	}
}

// MemoryCache is an in-memory cache with a bounded entry count. When full,
// the entry closest to expiry is evicted.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a new in-memory cache holding at most maxSize
// entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get retrieves an entry from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
	}

	if entry.Expired() {
		_ = c.Delete(ctx, key)

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return entry, nil
}

// Set stores an entry in the cache, evicting the entry closest to expiry if
// the cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = entry

	return nil
}

// evictOldest removes the entry closest to expiry. Caller must hold the lock.
func (c *MemoryCache) evictOldest() {
	var (
		oldestKey string
		oldestAt  time.Time
	)

	for key, entry := range c.entries {
		if oldestKey == "" || entry.ExpiresAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Delete removes an entry from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes all entries from the cache.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*CacheEntry)

	return nil
}

// Has checks if a non-expired entry exists for the key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	return ok && !entry.Expired()
}

// Len returns the number of stored entries, including expired entries the
// janitor has not swept yet.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Cleanup removes all expired entries. The janitor started by
// NewMemoryCacheFromConfig calls this on the configured interval; caches
// built directly with NewMemoryCache should call it periodically themselves
// or start a janitor.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.entries {
		if entry.Expired() {
			delete(c.entries, key)
		}
	}
}

// StartJanitor launches a goroutine that calls Cleanup on the given interval
// until the context is cancelled.
func (c *MemoryCache) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Cleanup()
			}
		}
	}()
}

// NATSKVConfig configures the NATS JetStream key-value cache backend.
type NATSKVConfig struct {
	// URL of the NATS server, e.g. nats://localhost:4222.
	URL string

	// Bucket is the KV bucket name. Defaults to "fastfuels-cache".
	Bucket string

	// TTL applies to the whole bucket when it must be created.
	TTL time.Duration

	// Credentials file for authenticated NATS deployments.
	Credentials string
}

// NATSKVCache is a cache backed by a NATS JetStream key-value bucket, for
// sharing snapshots between processes.
type NATSKVCache struct {
	conn *nats.Conn
	kv   nats.KeyValue
}

// NewNATSKVCache connects to NATS and binds (or creates) the configured
// key-value bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil || config.URL == "" {
		return nil, ErrNATSURLRequired
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = "fastfuels-cache"
	}

	ttl := config.TTL
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}

	var natsOpts []nats.Option
	if config.Credentials != "" {
		natsOpts = append(natsOpts, nats.UserCredentials(config.Credentials))
	}

	conn, err := nats.Connect(config.URL, natsOpts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	kv, err := js.KeyValue(bucket)
	if err != nil {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: bucket,
			TTL:    ttl,
		})
		if err != nil {
			conn.Close()

			return nil, fmt.Errorf("creating KV bucket: %w", err)
		}
	}

	return &NATSKVCache{conn: conn, kv: kv}, nil
}

// encodeKey maps cache keys onto the NATS KV key alphabet.
func encodeKey(key string) string {
	replacer := strings.NewReplacer("/", "_", ":", ".", "?", "_", "&", "_", "=", "-")

	return replacer.Replace(key)
}

// Get retrieves an entry from the KV bucket.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kvEntry, err := c.kv.Get(encodeKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCacheKeyNotFound, key)
		}

		return nil, fmt.Errorf("getting cache entry: %w", err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kvEntry.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired() {
		_ = c.Delete(ctx, key)

		return nil, fmt.Errorf("%w: %s", ErrCacheEntryExpired, key)
	}

	return &entry, nil
}

// Set stores an entry in the KV bucket.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.kv.Put(encodeKey(key), data)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}

	return nil
}

// Delete removes an entry from the KV bucket.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(encodeKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}

	return nil
}

// Clear removes all entries from the KV bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing cache keys: %w", err)
	}

	for _, key := range keys {
		_ = c.kv.Delete(key)
	}

	return nil
}

// Has checks if a non-expired entry exists for the key.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close releases the NATS connection.
func (c *NATSKVCache) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

// CacheStats tracks cache effectiveness counters.
type CacheStats struct {
	Hits   int64
	Misses int64
	Sets   int64
}

// GetHitRate returns the fraction of lookups served from cache.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// CacheManager wraps a Cache with key construction, stats, and TTL handling.
type CacheManager struct {
	cache   Cache
	options *CacheOptions

	mu    sync.Mutex
	stats CacheStats
}

// NewCacheManager creates a cache manager over the given backend. A nil
// backend disables caching. Nil options use DefaultCacheOptions.
func NewCacheManager(cache Cache, options *CacheOptions) *CacheManager {
	if cache == nil {
		cache = NewNoOpCache()
	}

	if options == nil {
		options = DefaultCacheOptions()
	}

	return &CacheManager{cache: cache, options: options}
}

// GetCacheKey builds a deterministic cache key from a request shape.
func (m *CacheManager) GetCacheKey(method, path string, params map[string]string) string {
	if len(params) == 0 {
		return method + ":" + path
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	var builder strings.Builder

	builder.WriteString(method)
	builder.WriteString(":")
	builder.WriteString(path)
	builder.WriteString(":")

	for i, key := range keys {
		if i > 0 {
			builder.WriteString("&")
		}

		builder.WriteString(key)
		builder.WriteString("=")
		builder.WriteString(params[key])
	}

	return builder.String()
}

// Get retrieves cached data for the key.
func (m *CacheManager) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := m.cache.Get(ctx, key)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.stats.Misses++

		return nil, err
	}

	m.stats.Hits++

	return entry.Data, nil
}

// Set stores data under the key for the given TTL.
func (m *CacheManager) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return m.SetWithETag(ctx, key, data, "", ttl)
}

// SetWithETag stores data with an ETag under the key for the given TTL.
func (m *CacheManager) SetWithETag(ctx context.Context, key string, data []byte, etag string, ttl time.Duration) error {
	if m.options.MaxValueSize > 0 && len(data) > m.options.MaxValueSize {
		return fmt.Errorf("%w: %d bytes", ErrCacheValueTooLarge, len(data))
	}

	if ttl <= 0 {
		ttl = m.options.DefaultTTL
	}

	entry := &CacheEntry{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
		ETag:      etag,
	}

	err := m.cache.Set(ctx, key, entry)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.stats.Sets++
	m.mu.Unlock()

	return nil
}

// Delete removes the key from the cache.
func (m *CacheManager) Delete(ctx context.Context, key string) error {
	return m.cache.Delete(ctx, key)
}

// GetStats returns a copy of the current counters.
func (m *CacheManager) GetStats() CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stats
}
