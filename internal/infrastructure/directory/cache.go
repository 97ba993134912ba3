// Package directory maintains the TTL-bounded in-memory snapshot of the
// platform's user directory and answers name/email/id lookups against it.
// The snapshot is replaced wholesale on refresh; concurrent readers within
// one TTL window see the same snapshot.
package directory

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/ebeckman/gong-mcp/internal/domain/user"
)

// DefaultTTL bounds how stale the directory snapshot may get.
const DefaultTTL = time.Hour

const snapshotKey = "users:all"

// CachedDirectory decorates a user.Source with snapshot caching.
type CachedDirectory struct {
	source user.Source
	store  *gocache.Cache
	ttl    time.Duration
	logger zerolog.Logger
}

func New(source user.Source, ttl time.Duration, logger zerolog.Logger) *CachedDirectory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &CachedDirectory{
		source: source,
		store:  gocache.New(ttl, 10*time.Minute),
		ttl:    ttl,
		logger: logger,
	}
}

// GetAllUsers returns the cached snapshot, refreshing it when it is absent,
// expired, or forceRefresh is set. Fetch failures surface to the caller;
// a stale snapshot is never silently served past its TTL.
func (d *CachedDirectory) GetAllUsers(ctx context.Context, forceRefresh bool) ([]user.User, error) {
	if !forceRefresh {
		if v, ok := d.store.Get(snapshotKey); ok {
			return v.([]user.User), nil
		}
	}

	users, err := d.source.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing user directory: %w", err)
	}
	d.store.Set(snapshotKey, users, d.ttl)
	d.logger.Debug().Int("users", len(users)).Msg("user directory refreshed")
	return users, nil
}

// FindUsers scans the directory for users matching the supplied criteria,
// loading it first if needed. An id with an exact directory hit
// short-circuits to that single user without a full scan.
func (d *CachedDirectory) FindUsers(ctx context.Context, criteria user.Criteria) ([]user.User, error) {
	users, err := d.GetAllUsers(ctx, false)
	if err != nil {
		return nil, err
	}

	if criteria.ID != "" {
		for _, u := range users {
			if u.ID() == criteria.ID {
				return []user.User{u}, nil
			}
		}
	}

	matches := []user.User{}
	for _, u := range users {
		if user.Matches(u, criteria) {
			matches = append(matches, u)
		}
	}
	return matches, nil
}
