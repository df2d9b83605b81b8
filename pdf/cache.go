package pdf

import (
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrCacheDisabled indicates caching is disabled
	ErrCacheDisabled = errors.New("caching is disabled")
	// ErrNotFound indicates the entry was not found in cache
	ErrNotFound = errors.New("cache entry not found")
)

// CacheConfig holds cache configuration
type CacheConfig struct {
	DBPath  string        // Database file path (default: ~/.cache/ipynbd.db)
	TTL     time.Duration // Cache time-to-live
	NoCache bool          // Disable caching
	Debug   bool          // Enable debug output
}

// CacheEntry is one cached render: the PDF bytes plus how they were made.
type CacheEntry struct {
	ExpiresAt *time.Time

	CacheKey  string
	Converter string

	PDF []byte

	ID         int64
	SizeBytes  int64
	DurationMS int64
	CreatedAt  time.Time
	AccessedAt time.Time
}

// Cache stores rendered PDFs in SQLite, keyed by page content and render
// options, so re-exporting an unchanged notebook skips the browser.
type Cache struct {
	db     *sql.DB
	config CacheConfig
}

// NewCache creates a new cache instance
func NewCache(config CacheConfig) (*Cache, error) {
	if config.DBPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		config.DBPath = filepath.Join(homeDir, ".cache", "ipynbd.db")
	}

	// Ensure cache directory exists
	cacheDir := filepath.Dir(config.DBPath)
	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set pragmas for performance
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	cache := &Cache{
		db:     db,
		config: config,
	}

	if err := cache.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	// Exports are short-lived processes, so expired rows are dropped once
	// at open rather than on a timer.
	cache.cleanupExpired()

	return cache, nil
}

// Close closes the database connection
func (c *Cache) Close() error {
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// cacheKey hashes the page content and render options into a lookup key
func (c *Cache) cacheKey(html []byte, options *Options) string {
	if options == nil {
		options = DefaultOptions()
	}
	h := sha256.New()
	h.Write(html)
	fmt.Fprintf(h, "|%s|%t|%t|%s", options.Format, options.PrintBackground, options.Landscape, options.Margin)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get retrieves a cached render of the given page
func (c *Cache) Get(html []byte, options *Options) (*CacheEntry, error) {
	if c.config.NoCache {
		return nil, ErrCacheDisabled
	}

	cacheKey := c.cacheKey(html, options)

	query := `
		SELECT id, cache_key, converter, pdf, size_bytes, duration_ms,
		       created_at, accessed_at, expires_at
		FROM pdf_cache
		WHERE cache_key = ?
		  AND (expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP)
		LIMIT 1
	`

	var entry CacheEntry
	var expiresAt sql.NullTime
	err := c.db.QueryRow(query, cacheKey).Scan(
		&entry.ID, &entry.CacheKey, &entry.Converter, &entry.PDF,
		&entry.SizeBytes, &entry.DurationMS,
		&entry.CreatedAt, &entry.AccessedAt, &expiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	if expiresAt.Valid {
		entry.ExpiresAt = &expiresAt.Time
	}

	// Update access time
	_, _ = c.db.Exec("UPDATE pdf_cache SET accessed_at = CURRENT_TIMESTAMP WHERE id = ?", entry.ID)

	if c.config.Debug {
		fmt.Fprintf(os.Stderr, "Cache hit for key %s (converter: %s)\n", entry.CacheKey[:16], entry.Converter)
	}

	return &entry, nil
}

// Set stores a rendered PDF for the given page
func (c *Cache) Set(html []byte, options *Options, entry *CacheEntry) error {
	if c.config.NoCache {
		return nil
	}

	entry.CacheKey = c.cacheKey(html, options)
	entry.SizeBytes = int64(len(entry.PDF))

	// Calculate expiration
	var expiresAt *time.Time
	if c.config.TTL > 0 {
		exp := time.Now().Add(c.config.TTL)
		expiresAt = &exp
	}

	query := `
		INSERT OR REPLACE INTO pdf_cache (
			cache_key, converter, pdf, size_bytes, duration_ms, expires_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := c.db.Exec(query,
		entry.CacheKey, entry.Converter, entry.PDF, entry.SizeBytes, entry.DurationMS, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}

	if c.config.Debug {
		fmt.Fprintf(os.Stderr, "Cached render for key %s (converter: %s, %d bytes)\n",
			entry.CacheKey[:16], entry.Converter, entry.SizeBytes)
	}

	return nil
}

// Clear removes all cache entries
func (c *Cache) Clear() error {
	result, err := c.db.Exec("DELETE FROM pdf_cache")
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	rows, _ := result.RowsAffected()
	if c.config.Debug {
		fmt.Fprintf(os.Stderr, "Cleared %d cache entries\n", rows)
	}

	return nil
}

// cleanupExpired removes expired cache entries
func (c *Cache) cleanupExpired() {
	query := "DELETE FROM pdf_cache WHERE expires_at IS NOT NULL AND expires_at < CURRENT_TIMESTAMP"
	result, err := c.db.Exec(query)
	if err != nil {
		if c.config.Debug {
			fmt.Fprintf(os.Stderr, "Failed to cleanup expired entries: %v\n", err)
		}
		return
	}

	if rows, _ := result.RowsAffected(); rows > 0 && c.config.Debug {
		fmt.Fprintf(os.Stderr, "Cleaned up %d expired cache entries\n", rows)
	}
}

// initSchema creates the database schema
func (c *Cache) initSchema() error {
	if _, err := c.db.Exec(embeddedSchema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}
