package ranking

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
)

// Cache is a string key/value store such as Redis
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value string) error
}

// CachedDirectory is a read-through cache in front of another directory.
// Only found rankings are stored, so unknown players are looked up again
// on the next run.
type CachedDirectory struct {
	next  Directory
	cache Cache
}

// NewCachedDirectory wraps a directory with a cache
func NewCachedDirectory(next Directory, cache Cache) *CachedDirectory {
	return &CachedDirectory{next: next, cache: cache}
}

// Lookup returns a cached ranking if present, otherwise asks the wrapped directory
func (c *CachedDirectory) Lookup(ctx context.Context, player, team string) (int, error) {
	key := cacheKey(player, team)

	if val, err := c.cache.Get(key); err == nil && val != "" {
		if points, err := strconv.Atoi(val); err == nil {
			log.Printf("Ranking cache hit for %s (%s)", player, team)
			return points, nil
		}
	}

	points, err := c.next.Lookup(ctx, player, team)
	if err != nil {
		return 0, err
	}

	if points > 0 {
		if err := c.cache.Set(key, strconv.Itoa(points)); err != nil {
			log.Printf("Failed to cache ranking for %s: %v", player, err)
		}
	}
	return points, nil
}

func cacheKey(player, team string) string {
	return fmt.Sprintf("ranking:v1:%s:%s", strings.ToLower(player), strings.ToLower(team))
}
