package pdf

// embeddedSchema contains the SQLite database schema
const embeddedSchema = `
-- Rendered PDF cache

CREATE TABLE IF NOT EXISTS pdf_cache (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    cache_key TEXT NOT NULL UNIQUE,
    converter TEXT NOT NULL,
    pdf BLOB NOT NULL,

    -- Metrics
    size_bytes INTEGER DEFAULT 0,
    duration_ms INTEGER DEFAULT 0,

    -- Timestamps
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    accessed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    expires_at TIMESTAMP
);

-- Index for cache lookups
CREATE INDEX IF NOT EXISTS idx_cache_lookup ON pdf_cache(cache_key, expires_at);
CREATE INDEX IF NOT EXISTS idx_created_at ON pdf_cache(created_at DESC);
`
