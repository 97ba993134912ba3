// Package cache provides a SQLite-backed repository decorator that caches
// normalized call records locally to reduce API round trips.
// Implements the decorator pattern: wraps a call.Repository, checks the
// local cache first, falls through to inner on miss.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ebeckman/gong-mcp/internal/domain/call"
)

// CachedRepository decorates a call.Repository with local SQLite caching.
type CachedRepository struct {
	inner call.Repository
	db    *sql.DB
	ttl   time.Duration
}

// NewCachedRepository creates a cached repository decorator.
// It initializes the cache schema on the provided database connection.
func NewCachedRepository(inner call.Repository, db *sql.DB, ttl time.Duration) (*CachedRepository, error) {
	if err := initSchema(db); err != nil {
		return nil, err
	}
	return &CachedRepository{inner: inner, db: db, ttl: ttl}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cache_entries (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			expires_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_cache_expires ON cache_entries(expires_at);
	`)
	return err
}

func (r *CachedRepository) get(key string) ([]byte, bool) {
	var data []byte
	err := r.db.QueryRow(
		"SELECT value FROM cache_entries WHERE key = ? AND expires_at > ?",
		key, time.Now().UTC(),
	).Scan(&data)
	if err != nil {
		return nil, false
	}
	return data, true
}

func (r *CachedRepository) set(key string, value []byte) {
	_, _ = r.db.Exec(
		"INSERT OR REPLACE INTO cache_entries (key, value, expires_at) VALUES (?, ?, ?)",
		key, value, time.Now().UTC().Add(r.ttl),
	)
}

// Evict removes expired entries from the cache.
func (r *CachedRepository) Evict() error {
	_, err := r.db.Exec("DELETE FROM cache_entries WHERE expires_at <= ?", time.Now().UTC())
	return err
}

// callCacheEntry is the serialized form of a Call for cache storage.
type callCacheEntry struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Scheduled     string                  `json:"scheduled,omitempty"`
	Started       string                  `json:"started,omitempty"`
	Duration      int                     `json:"duration,omitempty"`
	Direction     string                  `json:"direction,omitempty"`
	System        string                  `json:"system,omitempty"`
	Scope         string                  `json:"scope,omitempty"`
	Media         string                  `json:"media,omitempty"`
	Language      string                  `json:"language,omitempty"`
	URL           string                  `json:"url,omitempty"`
	HasTranscript bool                    `json:"hasTranscript"`
	Participants  []participantCacheEntry `json:"participants,omitempty"`
}

type participantCacheEntry struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	Company   string `json:"company,omitempty"`
}

func toCallCacheEntry(c *call.Call) callCacheEntry {
	participants := make([]participantCacheEntry, len(c.Participants()))
	for i, p := range c.Participants() {
		participants[i] = participantCacheEntry{
			ID:        p.ID(),
			Name:      p.Name(),
			FirstName: p.FirstName(),
			LastName:  p.LastName(),
			Email:     p.Email(),
			Role:      p.Role(),
			Company:   p.Company(),
		}
	}
	return callCacheEntry{
		ID:            string(c.ID()),
		Title:         c.Title(),
		Scheduled:     c.Scheduled(),
		Started:       c.Started(),
		Duration:      c.Duration(),
		Direction:     c.Direction(),
		System:        c.System(),
		Scope:         c.Scope(),
		Media:         c.Media(),
		Language:      c.Language(),
		URL:           c.URL(),
		HasTranscript: c.HasTranscript(),
		Participants:  participants,
	}
}

func fromCallCacheEntry(entry callCacheEntry) (*call.Call, error) {
	participants := make([]call.Participant, len(entry.Participants))
	for i, p := range entry.Participants {
		participants[i] = call.NewParticipant(p.ID, p.Name, p.FirstName, p.LastName, p.Email, p.Role, p.Company)
	}
	return call.New(call.ID(entry.ID), entry.Title, call.Attributes{
		Scheduled:     entry.Scheduled,
		Started:       entry.Started,
		Duration:      entry.Duration,
		Direction:     entry.Direction,
		System:        entry.System,
		Scope:         entry.Scope,
		Media:         entry.Media,
		Language:      entry.Language,
		URL:           entry.URL,
		HasTranscript: entry.HasTranscript,
		Participants:  participants,
	})
}

func (r *CachedRepository) FindByID(ctx context.Context, id call.ID) (*call.Call, error) {
	cacheKey := "call:" + string(id)
	if data, ok := r.get(cacheKey); ok {
		var entry callCacheEntry
		if json.Unmarshal(data, &entry) == nil {
			if c, err := fromCallCacheEntry(entry); err == nil {
				return c, nil
			}
		}
	}

	c, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(toCallCacheEntry(c)); marshalErr == nil {
		r.set(cacheKey, data)
	}
	return c, nil
}

func (r *CachedRepository) List(ctx context.Context, filter call.ListFilter) ([]*call.Call, error) {
	// List queries are parameterized — delegate directly to inner, no caching.
	return r.inner.List(ctx, filter)
}

func (r *CachedRepository) GetTranscript(ctx context.Context, id call.ID) (*call.Transcript, error) {
	// Transcripts are large — delegate to inner, no caching for now.
	return r.inner.GetTranscript(ctx, id)
}
