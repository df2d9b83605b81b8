package pdf

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T, config CacheConfig) *Cache {
	t.Helper()

	if config.DBPath == "" {
		config.DBPath = filepath.Join(t.TempDir(), "cache.db")
	}
	cache, err := NewCache(config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCacheSetGet(t *testing.T) {
	cache := testCache(t, CacheConfig{TTL: time.Hour})

	html := []byte("<!doctype html><html><body>page</body></html>")
	pdfBytes := []byte("%PDF-1.4 rendered bytes")

	require.NoError(t, cache.Set(html, nil, &CacheEntry{
		Converter:  "chromium",
		PDF:        pdfBytes,
		DurationMS: 125,
	}))

	entry, err := cache.Get(html, nil)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, entry.PDF)
	assert.Equal(t, "chromium", entry.Converter)
	assert.Equal(t, int64(len(pdfBytes)), entry.SizeBytes)
	assert.Equal(t, int64(125), entry.DurationMS)
	require.NotNil(t, entry.ExpiresAt)
	assert.True(t, entry.ExpiresAt.After(time.Now()))
}

func TestCacheMiss(t *testing.T) {
	cache := testCache(t, CacheConfig{})

	_, err := cache.Get([]byte("never rendered"), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheKeyIncludesOptions(t *testing.T) {
	cache := testCache(t, CacheConfig{})
	html := []byte("<html>same page</html>")

	portrait := &Options{Format: "A4", PrintBackground: true}
	require.NoError(t, cache.Set(html, portrait, &CacheEntry{Converter: "chromium", PDF: []byte("%PDF-a")}))

	t.Run("same options hit", func(t *testing.T) {
		entry, err := cache.Get(html, &Options{Format: "A4", PrintBackground: true})
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-a"), entry.PDF)
	})

	t.Run("different format misses", func(t *testing.T) {
		_, err := cache.Get(html, &Options{Format: "Letter", PrintBackground: true})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("different orientation misses", func(t *testing.T) {
		_, err := cache.Get(html, &Options{Format: "A4", PrintBackground: true, Landscape: true})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCacheReplace(t *testing.T) {
	cache := testCache(t, CacheConfig{})
	html := []byte("<html>page</html>")

	require.NoError(t, cache.Set(html, nil, &CacheEntry{Converter: "chromium", PDF: []byte("%PDF-old")}))
	require.NoError(t, cache.Set(html, nil, &CacheEntry{Converter: "playwright", PDF: []byte("%PDF-new")}))

	entry, err := cache.Get(html, nil)
	require.NoError(t, err)
	assert.Equal(t, "playwright", entry.Converter)
	assert.Equal(t, []byte("%PDF-new"), entry.PDF)
}

func TestCacheDisabled(t *testing.T) {
	cache := testCache(t, CacheConfig{NoCache: true})
	html := []byte("<html>page</html>")

	_, err := cache.Get(html, nil)
	assert.ErrorIs(t, err, ErrCacheDisabled)

	// Set is a silent no-op when disabled.
	assert.NoError(t, cache.Set(html, nil, &CacheEntry{Converter: "chromium", PDF: []byte("%PDF")}))
}

func TestCacheExpiredEntry(t *testing.T) {
	cache := testCache(t, CacheConfig{TTL: time.Hour})
	html := []byte("<html>page</html>")

	require.NoError(t, cache.Set(html, nil, &CacheEntry{Converter: "chromium", PDF: []byte("%PDF")}))

	_, err := cache.db.Exec("UPDATE pdf_cache SET expires_at = datetime('now', '-1 hour')")
	require.NoError(t, err)

	_, err = cache.Get(html, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheCleanupAtOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	html := []byte("<html>page</html>")

	cache, err := NewCache(CacheConfig{DBPath: dbPath, TTL: time.Hour})
	require.NoError(t, err)
	require.NoError(t, cache.Set(html, nil, &CacheEntry{Converter: "chromium", PDF: []byte("%PDF")}))
	_, err = cache.db.Exec("UPDATE pdf_cache SET expires_at = datetime('now', '-1 hour')")
	require.NoError(t, err)
	require.NoError(t, cache.Close())

	reopened, err := NewCache(CacheConfig{DBPath: dbPath})
	require.NoError(t, err)
	defer reopened.Close()

	var count int
	require.NoError(t, reopened.db.QueryRow("SELECT COUNT(*) FROM pdf_cache").Scan(&count))
	assert.Equal(t, 0, count, "expired rows must be dropped at open")
}

func TestCacheClear(t *testing.T) {
	cache := testCache(t, CacheConfig{})

	require.NoError(t, cache.Set([]byte("page one"), nil, &CacheEntry{Converter: "chromium", PDF: []byte("%PDF-1")}))
	require.NoError(t, cache.Set([]byte("page two"), nil, &CacheEntry{Converter: "chromium", PDF: []byte("%PDF-2")}))

	require.NoError(t, cache.Clear())

	_, err := cache.Get([]byte("page one"), nil)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cache.Get([]byte("page two"), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCacheNoTTL(t *testing.T) {
	cache := testCache(t, CacheConfig{})
	html := []byte("<html>page</html>")

	require.NoError(t, cache.Set(html, nil, &CacheEntry{Converter: "chromium", PDF: []byte("%PDF")}))

	entry, err := cache.Get(html, nil)
	require.NoError(t, err)
	assert.Nil(t, entry.ExpiresAt, "entries without a TTL never expire")
}
